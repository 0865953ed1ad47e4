package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-checker/internal/observability"
	schemafiles "github.com/jonathan/resume-checker/schemas"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the jobs resumes can be scored against",
	RunE:  runJobs,
}

var (
	jobsFile   string
	jobsAsJSON bool
)

func init() {
	jobsCmd.Flags().StringVar(&jobsFile, "jobs-file", "", "Path to a JSON job catalog (overrides config)")
	jobsCmd.Flags().BoolVar(&jobsAsJSON, "json", false, "Print the catalog as JSON")

	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, _ []string) error {
	path := jobsFile
	if path == "" {
		path = appConfig.JobsFile
	}
	catalog, err := jobsProvider(path)
	if err != nil {
		return err
	}

	jobList, err := catalog.List(cmd.Context())
	if err != nil {
		return err
	}

	if jobsAsJSON {
		if err := checkSchema(schemafiles.JobCatalog, jobList); err != nil {
			return err
		}
		return writeJSON("", jobList)
	}

	observability.NewPrinter(os.Stdout).PrintJobs(jobList)
	return nil
}

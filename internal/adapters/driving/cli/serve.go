package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	atshttp "github.com/custodia-labs/atsfit-cli/internal/adapters/driving/http"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API for uploading resumes and downloading rewrites.

Routes:
  POST   /analyze                multipart: resume (.pdf/.docx), job_description
  GET    /analyses               list stored analyses
  GET    /analyses/:id           one analysis
  DELETE /analyses/:id           delete an analysis
  GET    /download/:id/:format   rewritten resume as pdf or docx (?original=true)
  POST   /score                  lexical score of text or an upload
  POST   /render                 render text as pdf or docx
  GET    /healthz                liveness

Prompt files under the config directory are reloaded when edited.`,
	Annotations: map[string]string{annotationAssistant: "true"},
	RunE:        runServe,
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().Int("body-limit", atshttp.DefaultBodyLimit, "Maximum request body size in bytes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	bodyLimit, _ := cmd.Flags().GetInt("body-limit")

	server, err := atshttp.NewServer(&atshttp.Ports{
		Document: documentService,
		Analysis: analysisService,
	}, atshttp.Config{BodyLimit: bodyLimit})
	if err != nil {
		return err
	}

	if promptWatcher != nil {
		changes, err := promptWatcher.Watch(cmd.Context())
		if err != nil {
			logger.Warn("prompt reload disabled: %v", err)
		} else {
			go func() {
				for name := range changes {
					logger.Info("prompt %s reloaded", name)
				}
			}()
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "atsfit API listening on http://%s\n", addr)
	return server.Run(cmd.Context(), addr)
}

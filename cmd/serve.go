package cmd

import (
	"log"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port      int
		scenesDir string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
			webServer := server.NewServer(port, scenesDir)
			webServer.SetLogger(logger)

			logger.Printf("Path Tracer Web Server")
			logger.Printf("Try http://localhost:%d/api/render?scene=default", port)

			return webServer.Start()
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	serveCmd.Flags().StringVar(&scenesDir, "scenes-dir", "scenes", "Directory of scene files to expose")
	return serveCmd
}

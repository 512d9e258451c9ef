package main

import (
	"context"
	"fmt"
	"os"

	garmentd "github.com/seamly/garmentd"
	"github.com/seamly/garmentd/pkg/domain"
	"github.com/seamly/garmentd/pkg/orchestrator"
	"github.com/seamly/garmentd/pkg/ports"
	"github.com/seamly/garmentd/pkg/schema"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var generateCmd = &cobra.Command{
	Use:   "generate [design-file]",
	Short: "Generate a garment offline from a design parameter file",
	Long:  `Validates a YAML or JSON design parameter file and writes the requested artifacts into a fresh session directory.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		kind, _ := cmd.Flags().GetString("kind")
		printable, _ := cmd.Flags().GetBool("printable")
		cells, _ := cmd.Flags().GetInt("cells")

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error reading design file: %v\n", err)
			os.Exit(1)
		}
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			fmt.Printf("Error parsing design file: %v\n", err)
			os.Exit(1)
		}

		spec, err := schema.Validate(raw)
		if err != nil {
			fmt.Printf("Invalid design: %v\n", err)
			os.Exit(1)
		}

		svc, err := garmentd.New(out, garmentd.WithMeshCells(cells))
		if err != nil {
			fmt.Printf("Error initializing garmentd: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		doc, err := svc.Resolver.Resolve(ctx, spec, nil)
		if err != nil {
			fmt.Printf("Pattern construction failed: %v\n", err)
			os.Exit(1)
		}

		target := domain.TargetThreeD
		if kind == "2d" {
			target = domain.TargetTwoD
		}
		sess, err := svc.Orchestrator.Generate(ctx, orchestrator.Request{
			Pattern: doc,
			Kind:    target,
			Vector:  ports.VectorOptions{WithText: true, WithPrintable: printable},
		})
		if err != nil {
			fmt.Printf("Generation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Session %s ready in %s\n", sess.ID, sess.OutputDir)
		for kind, path := range sess.Artifacts {
			fmt.Printf("  %s: %s\n", kind, path)
		}
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("out", "o", "output", "Output root directory")
	generateCmd.Flags().StringP("kind", "k", "3d", "Artifact kind to generate (3d or 2d)")
	generateCmd.Flags().Bool("printable", false, "Also produce the paginated print PDF (2d only)")
	generateCmd.Flags().Int("cells", 0, "Marching cubes resolution (0 uses the default)")
}

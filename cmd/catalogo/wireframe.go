package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"catalogo/internal/layout"
)

func newWireframeCommand() *cobra.Command {
	var out, canvas string
	var dpi int

	cmd := &cobra.Command{
		Use:   "wireframe",
		Short: "Draw the product slide regions as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := layout.Slide16x9
			switch canvas {
			case "slide", "":
			case "a4":
				c = layout.PageA4Landscape
			default:
				return fmt.Errorf("canvas desconhecido %q (slide ou a4)", canvas)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			layout.WriteWireframe(w, c, dpi)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&canvas, "canvas", "slide", "slide (16:9) or a4 (PDF page)")
	cmd.Flags().IntVar(&dpi, "dpi", 96, "pixels per inch")
	return cmd
}

// Package cli implements the qrgen command line tool, which renders images
// with the same validation and encoding rules as the HTTP service.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/encoder"
	"github.com/foodsaid/qrgen/internal/model"
	"github.com/foodsaid/qrgen/internal/validator"
)

// NewRootCommand builds the qrgen command tree. limits bounds accepted content.
func NewRootCommand(limits config.Limits) *cobra.Command {
	root := &cobra.Command{
		Use:           "qrgen",
		Short:         "Generate QR code and Code128 barcode PNG images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	v := validator.New(limits)
	root.AddCommand(newRenderCommand(v))
	root.AddCommand(newCheckCommand(v))
	return root
}

// Execute runs the command line tool and exits non-zero on failure.
func Execute() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	if err := NewRootCommand(cfg.Limits).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("content", "", "text content to encode")
	cmd.Flags().String("type", model.DefaultType, "type of code to generate (qrcode or barcode)")
}

func readInput(cmd *cobra.Command) model.GenerateRequest {
	content, _ := cmd.Flags().GetString("content")
	kind, _ := cmd.Flags().GetString("type")
	return model.GenerateRequest{Content: content, Type: kind}.Normalize()
}

func newRenderCommand(v *validator.Validator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render content as a PNG image",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return fmt.Errorf("--out required")
			}

			in := readInput(cmd)
			req, err := v.Parse(in.Content, in.Type)
			if err != nil {
				return err
			}

			enc, err := encoder.New(encoder.DefaultRenderConfig())
			if err != nil {
				return err
			}
			b, err := enc.Encode(req.Content, req.Kind)
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s, %d bytes)\n", out, req.Kind, len(b))
			return nil
		},
	}
	addInputFlags(cmd)
	cmd.Flags().String("out", "", "output file, or - for stdout")
	return cmd
}

func newCheckCommand(v *validator.Validator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether content would be accepted",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := readInput(cmd)
			res := v.Validate(in.Content, in.Type)
			if !res.Valid {
				return fmt.Errorf("%s", res.Reason)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

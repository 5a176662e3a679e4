// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dpchain/pipeline"
)

// ErrClaim is returned by check when the privacy claim does not hold.
var ErrClaim = errors.New("privacy claim does not hold")

func (a *app) build(path string) (*pipeline.Pipeline, error) {
	doc, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := pipeline.Build(doc, pipeline.WithConstantTime(a.cfg.ConstantTime))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("pipeline built",
		zap.String("name", doc.Name),
		zap.String("kind", p.Kind()),
		zap.Int("steps", len(doc.Steps)))
	return p, nil
}

type checkReport struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	DIn  any    `yaml:"d_in"`
	Map  any    `yaml:"map"`
	DOut any    `yaml:"d_out"`
	Ok   bool   `yaml:"ok"`
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <pipeline.yaml>",
		Short: "Verify a pipeline's privacy claim without touching data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.build(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			doc := p.Document()
			if doc.DIn == nil || doc.DOut == nil {
				return fmt.Errorf("%s: d_in and d_out are required", args[0])
			}
			bound, err := p.Map(nil)
			if err != nil {
				return err
			}
			ok, err := p.Check(nil, nil)
			if err != nil {
				return err
			}
			rep := checkReport{Name: doc.Name, Kind: p.Kind(), DIn: doc.DIn.Value, Map: bound, DOut: doc.DOut.Value, Ok: ok}
			if err := a.print(cmd, rep, func() string {
				verdict := "ok"
				if !ok {
					verdict = "FAILED"
				}
				return fmt.Sprintf("%s (%s): d_in=%v map=%v d_out=%v %s\n", rep.Name, rep.Kind, rep.DIn, rep.Map, rep.DOut, verdict)
			}); err != nil {
				return err
			}
			if !ok {
				return ErrClaim
			}
			return nil
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	var unchecked bool
	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Release a pipeline on its input under a filter capped at d_out",
		Long: "Builds the pipeline and admits it to a privacy filter whose budget is the\n" +
			"document's d_out. With --unchecked, transformations and postprocessors\n" +
			"are invoked directly with no budget.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.build(args[0])
			if err != nil {
				return err
			}
			defer p.Close()

			var out any
			if unchecked || p.Kind() != "Measurement" {
				out, err = p.Invoke(nil)
			} else {
				out, err = p.Release()
			}
			if err != nil {
				return err
			}
			a.logger.Info("pipeline released", zap.String("name", p.Document().Name))
			return a.print(cmd, map[string]any{"output": out}, func() string {
				return fmt.Sprintf("%v\n", out)
			})
		},
	}
	cmd.Flags().BoolVar(&unchecked, "unchecked", false, "Invoke without a privacy filter")
	return cmd
}

func (a *app) print(cmd *cobra.Command, v any, text func() string) error {
	if a.format == "yaml" {
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(b)
		return err
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text())
	return err
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/lookup"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/model"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/simulator"
	"github.com/xiaogaogaoxiao/cf-ra-spatial-separability/pkg/statistics"
)

func main() {
	if err := getRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func getRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cfsim",
		Short:        "Cell-free random-access NMSE simulation",
		SilenceUsage: true,
		RunE:         runSimulation,
	}
	cmd.Flags().String("config", "cellfree", "model configuration name (without extension)")
	cmd.Flags().String("lookup-dir", "lookup", "directory holding the lookup tables")
	cmd.Flags().String("estimator", "", "override the configured estimator (est1, est2 or est3)")
	cmd.Flags().String("output-dir", "data", "directory to write the NMSE artifact to")
	return cmd
}

type artifact struct {
	RunID     string            `yaml:"runId"`
	Estimator model.Variant     `yaml:"estimator"`
	NMSE      []statistics.NMSE `yaml:"nmse"`
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	configName, _ := cmd.Flags().GetString("config")
	lookupDir, _ := cmd.Flags().GetString("lookup-dir")
	estOverride, _ := cmd.Flags().GetString("estimator")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	m := &model.Model{}
	if err := model.LoadConfig(m, configName); err != nil {
		return err
	}
	if estOverride != "" {
		m.System.Estimator = model.Variant(estOverride)
		if err := m.Validate(); err != nil {
			return err
		}
	}

	bestPairPath := filepath.Join(lookupDir, fmt.Sprintf("lookup_best_pair_%s.yaml", m.System.Estimator))
	deltaPath := ""
	if m.System.Estimator == model.EstBiasCorrected {
		deltaPath = filepath.Join(lookupDir, "lookup_delta.yaml")
	}
	tables, err := lookup.Load(bestPairPath, deltaPath)
	if err != nil {
		return err
	}

	sim, err := simulator.New(m, tables)
	if err != nil {
		return err
	}
	result, err := sim.Run()
	if err != nil {
		return err
	}

	return writeArtifact(outputDir, m.System.Estimator, result)
}

func writeArtifact(outputDir string, variant model.Variant, result simulator.Result) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(artifact{RunID: result.RunID, Estimator: variant, NMSE: result.NMSE})
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("nmse_cellfree_%s.yaml", variant))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Infof("NMSE statistics written to %s", path)
	return nil
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/luca1197/gmod-developer-cli/internal/collect"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/spf13/cobra"
)

var (
	modelSourcePaths []string
	modelOutputPath  string

	// modelCmd groups operations on compiled MDL models.
	modelCmd = &cobra.Command{
		Use:   "model",
		Short: "Work with compiled MDL models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	modelCollectCmd = &cobra.Command{
		Use:   "collect-content <model.mdl>",
		Short: "Collect a model's files and all content it references",
		Long: `Collect a model's files and all content it references into a directory.

Copies the model along with its companion files (.dx90.vtx, .phy, .vvd),
then resolves the materials the model uses against the source paths and
copies those too. References satisfied by Garry's Mod's own mounted content
are skipped; everything else is reported as missing.`,
		Args: cobra.ExactArgs(1),
		RunE: runModelCollect,
	}
)

func init() {
	modelCollectCmd.Flags().StringArrayVarP(&modelSourcePaths, "source-path", "s", nil, "content directory to search, earlier paths win (repeatable)")
	modelCollectCmd.Flags().StringVarP(&modelOutputPath, "output-path", "o", "", "directory to copy collected content into")
	_ = modelCollectCmd.MarkFlagRequired("output-path")

	modelCmd.AddCommand(modelCollectCmd)
}

func runModelCollect(cmd *cobra.Command, args []string) error {
	modelPath := args[0]
	if err := validateInputFile(modelPath, "mdl"); err != nil {
		return issue.WrapWithContext(err, "read model file", modelPath)
	}

	logger := newLogger()

	sourceDirs := effectiveSourceDirs(modelSourcePaths)
	env, err := newCollectEnv(sourceDirs, modelOutputPath, logger)
	if err != nil {
		return err
	}

	// Derive the in-game reference path from the source root that holds the
	// model, so the copy keeps its models/ tree.
	absSources := make([]string, 0, len(sourceDirs))
	for _, dir := range sourceDirs {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return issue.WrapWithContext(absErr, "resolve source path", dir)
		}
		absSources = append(absSources, abs)
	}
	absModel, err := filepath.Abs(modelPath)
	if err != nil {
		return issue.WrapWithContext(err, "resolve model path", modelPath)
	}

	collector := &collect.Collector{
		Search: env.search,
		Output: env.output,
		Logger: env.logger,
	}
	if _, err := collector.CollectModel(collect.DeriveModelRef(absSources, absModel)); err != nil {
		return err
	}

	fmt.Printf("%s Collected content for %s into %s\n", SuccessStyle.Render("✓"), filepath.Base(modelPath), modelOutputPath)
	return nil
}

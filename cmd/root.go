/*
Copyright © 2022 Daniils Petrovs <thedanpetrov@gmail.com>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DaniruKun/watermark-detector/imgproc"
	"github.com/DaniruKun/watermark-detector/imgproc/cvmatch"
	"github.com/DaniruKun/watermark-detector/utils"
	"github.com/DaniruKun/watermark-detector/watermark"
)

// Threshold of the example invocation, for a small lossy template
const DefaultThreshold = 0.1

// newRootCmd builds the base command used when called without any subcommands
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watermark-detector",
		Short: "Watermark Detector",
		Long: `Checks whether a watermark template appears in the bottom-right corner of an image,
using normalized cross-correlation template matching against a confidence threshold.`,
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringP("image", "i", utils.DefaultImagePath, "Image to search for the watermark")
	cmd.Flags().StringP("template", "t", utils.DefaultTemplatePath, "Watermark template image")
	cmd.Flags().Float64("threshold", DefaultThreshold, "Minimum match confidence for a watermark to count as present")
	cmd.Flags().StringP("backend", "b", string(imgproc.BackendOpenCV), "Matching backend, `opencv` or `native`")
	cmd.Flags().StringP("config", "c", "", "YAML config file")
	cmd.Flags().Bool("debug", false, "Debug logging")
	cmd.Flags().Bool("human", false, "Human readable logs instead of JSON")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	imagePath, _ := flags.GetString("image")
	templatePath, _ := flags.GetString("template")
	threshold, _ := flags.GetFloat64("threshold")
	backend, _ := flags.GetString("backend")
	cfgPath, _ := flags.GetString("config")
	debug, _ := flags.GetBool("debug")
	human, _ := flags.GetBool("human")

	logger := newLogger(cmd.ErrOrStderr(), debug, human)

	config := imgproc.DefaultConfig()
	if cfgPath != "" {
		loaded, err := imgproc.LoadConfig(utils.ExpandPath(cfgPath))
		if err != nil {
			return err
		}
		config = loaded
		if !flags.Changed("threshold") {
			threshold = config.Threshold
		}
	}
	if flags.Changed("backend") || cfgPath == "" {
		config.Backend = imgproc.Backend(backend)
	}

	matcher, err := newMatcher(config)
	if err != nil {
		return err
	}

	detector := watermark.NewDetector(matcher,
		watermark.WithOutput(cmd.OutOrStdout()),
		watermark.WithLogger(logger),
	)

	res, err := detector.Detect(utils.ExpandPath(imagePath), utils.ExpandPath(templatePath), threshold)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Watermark Found:", res.Present)
	return nil
}

func newMatcher(config imgproc.Config) (imgproc.Matcher, error) {
	switch config.Backend {
	case imgproc.BackendOpenCV:
		return cvmatch.New(config)
	case imgproc.BackendNative:
		return imgproc.NewNativeMatcher(config)
	default:
		return nil, errors.Wrapf(imgproc.ErrInvalidConfig, "unknown backend %q", config.Backend)
	}
}

// Execute runs the root command and exits non-zero when the image could not
// be evaluated. This is called by main.main(). It only needs to happen once.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

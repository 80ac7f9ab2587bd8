package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ccollins476ad/dlsys/config"
	"github.com/ccollins476ad/dlsys/fetch"
	"github.com/ccollins476ad/dlsys/fileutil"
	"github.com/ccollins476ad/dlsys/ytdl"
	"github.com/spf13/cobra"
)

// batchFunc runs one kind of fetch.
type batchFunc func(ctx context.Context, f *fetch.Fetcher, req fetch.Request) (*fetch.Report, error)

func newRootCommand() *cobra.Command {
	return newApp().rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dlsys",
		Short:         "Download audio, video, images and webpages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	registerFlags(rootCmd.PersistentFlags(), &a.flags)

	rootCmd.AddCommand(
		a.newBatchCommand("audio", "Download the audio track of each url as mp3",
			func(ctx context.Context, f *fetch.Fetcher, req fetch.Request) (*fetch.Report, error) {
				return f.Audio(ctx, req)
			}),
		a.newBatchCommand("video", "Download each url as video",
			func(ctx context.Context, f *fetch.Fetcher, req fetch.Request) (*fetch.Report, error) {
				return f.Video(ctx, req)
			}),
		a.newBatchCommand("images", "Download images, expanding albums on supported hosts",
			func(ctx context.Context, f *fetch.Fetcher, req fetch.Request) (*fetch.Report, error) {
				return f.Images(ctx, req)
			}),
		a.newBatchCommand("webpages", "Download webpages as html",
			func(ctx context.Context, f *fetch.Fetcher, req fetch.Request) (*fetch.Report, error) {
				return f.Webpages(ctx, req)
			}),
		a.newSplitCommand(),
		newInstallCommand(),
		newConfigInitCommand(),
	)

	return rootCmd
}

func (a *app) newBatchCommand(use string, short string, run batchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [url]...",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := a.collectURLs(args)
			if err != nil {
				return err
			}

			req, err := a.request(urls)
			if err != nil {
				return err
			}

			report, err := run(cmd.Context(), a.newFetcher(a.cfg), req)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			if n := countFailed(report); n > 0 {
				return fmt.Errorf("%d download(s) failed", n)
			}
			return nil
		},
	}
}

func (a *app) newSplitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "split <file> <minutes>",
		Short: "Split an audio file into parts of the given length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: minutes must be an integer: %q", fetch.ErrInvalidArgument, args[1])
			}

			parts, err := a.newFetcher(a.cfg).Split(cmd.Context(), args[0], minutes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range parts {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
}

func newInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Ensure a yt-dlp executable is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ytdl.Install(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				if target, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			if !overwrite && fileutil.FileExists(target) {
				return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
			}
			if err := config.WriteDefault(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote default configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing configuration file")
	return cmd
}

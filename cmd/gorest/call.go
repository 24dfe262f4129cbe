package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/gorest/bootstrap"
	"github.com/kbukum/gorest/cookie"
	"github.com/kbukum/gorest/encryption"
	"github.com/kbukum/gorest/rest"
)

type callFlags struct {
	headers   []string
	raw       bool
	cookieDir string
	cookieKey string
	summary   bool
}

func newCallCmd(root *rootFlags) *cobra.Command {
	flags := &callFlags{}
	cmd := &cobra.Command{
		Use:   "call <service> <verb> <path> [key=value...]",
		Short: "Send one request to a configured service",
		Example: `  gorest call billing get invoices/42 expand=lines
  gorest call billing post invoices customer=7 'lines[0][sku]=A1'`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[3:])
			if err != nil {
				return err
			}
			jarOpts, err := flags.jarOptions()
			if err != nil {
				return err
			}
			app, err := root.newApp(
				bootstrap.WithOutput(cmd.ErrOrStderr()),
				bootstrap.WithRestOptions(rest.WithJarOptions(jarOpts...)),
			)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context, a *bootstrap.App) error {
				if flags.summary {
					a.DisplaySummary(ctx)
				}
				return runCall(ctx, cmd.OutOrStdout(), a.Rest, args[0], args[1], args[2], params, flags)
			})
		},
	}
	cmd.Flags().StringArrayVarP(&flags.headers, "header", "H", nil, `extra header as "Key: Value" (repeatable)`)
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "print the response body without interpreting it")
	cmd.Flags().StringVar(&flags.cookieDir, "cookie-dir", "", "persist the cookie jar to a file in this directory")
	cmd.Flags().StringVar(&flags.cookieKey, "cookie-key", "", "passphrase encrypting the cookie file")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print component summary before the call")
	return cmd
}

func (f *callFlags) jarOptions() ([]cookie.Option, error) {
	var opts []cookie.Option
	if f.cookieDir != "" {
		opts = append(opts, cookie.WithFileStore(f.cookieDir))
	}
	if f.cookieKey != "" {
		if f.cookieDir == "" {
			return nil, fmt.Errorf("--cookie-key requires --cookie-dir")
		}
		enc, err := encryption.New(f.cookieKey)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cookie.WithEncryptor(enc))
	}
	return opts, nil
}

func runCall(ctx context.Context, w io.Writer, reg *rest.Registry, service, verb, path string, params rest.Params, flags *callFlags) error {
	client, err := reg.Of(service)
	if err != nil {
		return err
	}
	target := client.Path(splitPath(path)...)
	target.SetHeaderLines(flags.headers...)

	if flags.raw {
		body, err := target.Raw(ctx, verb, "", params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(body))
		return err
	}

	result, err := target.Call(ctx, verb, "", params)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func splitPath(path string) []string {
	var out []string
	for seg := range strings.SplitSeq(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

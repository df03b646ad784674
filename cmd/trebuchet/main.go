// Command trebuchet is a small driver for sending templated emails through
// the trebuchet client, mainly useful for integration-testing templates and
// API credentials against the live Postmark API.
//
// Configuration comes from the environment (see trebuchet.LoadConfig); a
// .env file in the working directory is picked up when present. With the
// default POSTMARK_API_TEST token nothing is actually delivered.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/trebuchet"
	"github.com/dmitrymomot/trebuchet/pkg/logger"
	"github.com/dmitrymomot/trebuchet/pkg/postmark"
)

var (
	flagFrom     string
	flagTo       string
	flagSubject  string
	flagTemplate string
	flagHTML     string
	flagCSS      string
	flagText     string
	flagData     string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "trebuchet",
	Short: "Render templated emails and hurl them at the Postmark API",
}

var flingCmd = &cobra.Command{
	Use:   "fling",
	Short: "Render and send a single message immediately",
	Example: `  trebuchet fling --from team@example.com --to user@example.com \
      --template welcome --data '{"Name":"Alice"}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		opts, err := buildSendOptions(flagTo)
		if err != nil {
			return err
		}

		resp, err := client.Fling(cmd.Context(), opts)
		if err != nil {
			return err
		}
		fmt.Printf("sent: %s\n", resp.MessageID)
		return nil
	},
}

var fireCmd = &cobra.Command{
	Use:   "fire",
	Short: "Load one message per recipient, then batch-send the outbox",
	Long: `Renders the referenced template once per recipient (--to accepts a
comma-separated list), loads each message into the outbox and fires the
whole batch as a single request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		for _, to := range strings.Split(flagTo, ",") {
			to = strings.TrimSpace(to)
			if to == "" {
				continue
			}
			opts, err := buildSendOptions(to)
			if err != nil {
				return err
			}
			n, err := client.Load(opts)
			if err != nil {
				return err
			}
			fmt.Printf("loaded %s (%d pending)\n", to, n)
		}

		responses, err := client.Fire(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range responses {
			status := "accepted"
			if r.ErrorCode != 0 {
				status = r.Message
			}
			fmt.Printf("%s: %s\n", r.To, status)
		}
		return nil
	},
}

func newClient() (*trebuchet.Client, error) {
	cfg, err := trebuchet.LoadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.NewNope()
	if flagVerbose {
		log = logger.New(slog.LevelDebug)
	}
	return trebuchet.New(cfg, trebuchet.WithLogger(log)), nil
}

func buildSendOptions(to string) (trebuchet.SendOptions, error) {
	var data map[string]any
	if flagData != "" {
		if err := json.Unmarshal([]byte(flagData), &data); err != nil {
			return trebuchet.SendOptions{}, fmt.Errorf("invalid --data: %w", err)
		}
	}

	return trebuchet.SendOptions{
		Message: postmark.Message{
			From:    flagFrom,
			To:      to,
			Subject: flagSubject,
		},
		TemplateName: flagTemplate,
		HTML:         flagHTML,
		CSS:          flagCSS,
		Text:         flagText,
		Data:         data,
	}, nil
}

func init() {
	for _, cmd := range []*cobra.Command{flingCmd, fireCmd} {
		cmd.Flags().StringVar(&flagFrom, "from", "", "sender address")
		cmd.Flags().StringVar(&flagTo, "to", "", "recipient address(es)")
		cmd.Flags().StringVar(&flagSubject, "subject", "", "subject line (template frontmatter used when empty)")
		cmd.Flags().StringVar(&flagTemplate, "template", "", "named template under the template directory")
		cmd.Flags().StringVar(&flagHTML, "html", "", "explicit HTML template path")
		cmd.Flags().StringVar(&flagCSS, "css", "", "explicit stylesheet path")
		cmd.Flags().StringVar(&flagText, "text", "", "explicit text template path")
		cmd.Flags().StringVar(&flagData, "data", "", "template data as a JSON object")
		_ = cmd.MarkFlagRequired("from")
		_ = cmd.MarkFlagRequired("to")
	}
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(flingCmd, fireCmd)
}

func main() {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

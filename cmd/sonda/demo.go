package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/sonda"
	"github.com/aretw0/sonda/pkg/adapters/file"
	"github.com/aretw0/sonda/pkg/adapters/memory"
	"github.com/aretw0/sonda/pkg/config"
	"github.com/aretw0/sonda/pkg/domain"
	"github.com/aretw0/sonda/pkg/resolve"
	"github.com/aretw0/sonda/pkg/sink"
	"github.com/aretw0/sonda/pkg/stream"
)

// cartAction is the demo store's action type.
type cartAction struct {
	Type string
	Item string
}

func cartReducer(cur domain.Snapshot, a cartAction) domain.Snapshot {
	next := cur.Clone()
	items, _ := cur["items"].([]string)
	switch a.Type {
	case "add":
		next["items"] = append(append([]string(nil), items...), a.Item)
	case "clear":
		next["items"] = []string{}
	}
	next["last_action"] = a.Type
	return next
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an instrumented stream and store",
	Long:  `Runs an in-memory cart store and a few instrumented streams, logging every record through the configured logger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")

		out, err := resolveSink(settings, newLogger(settings))
		if err != nil {
			return err
		}
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			records, err := file.NewSink(path)
			if err != nil {
				return err
			}
			defer records.Close()
			out = sink.NewMulti(out, records)
		}

		probe := sonda.New(sonda.WithSink(out))
		probe.Log(verbose, "demo starting", "threshold", settings.Threshold)

		cfg, err := demoProbe(settings)
		if err != nil {
			return err
		}

		// Stream lifecycle.
		values := sonda.Instrument(probe, stream.Of("apple", "pear"), cfg)
		sub := values.Subscribe(stream.Observe[string](nil, nil, nil))
		sub.Unsubscribe()

		// Errors are logged at ERROR regardless of the call-site severity.
		failing := sonda.Instrument(probe, stream.Fail[string](errors.New("out of stock")), cfg)
		failing.Subscribe(stream.Observe[string](nil, func(err error) {
			probe.Warn(verbose, "stream failed", "error", err)
		}, nil))

		// Store tracing.
		store := memory.NewStore[cartAction](domain.Snapshot{"items": []string{}}, cartReducer)
		dispatch, tracking := sonda.Watch[cartAction, domain.Snapshot](probe, store)
		defer tracking.Unsubscribe()

		dispatch(cartAction{Type: "add", Item: "apple"})
		dispatch(cartAction{Type: "add", Item: "pear"})
		final := dispatch(cartAction{Type: "clear"})

		fmt.Printf("final state: %v\n", final)
		return nil
	},
}

// demoProbe uses the "demo" profile from settings when present.
func demoProbe(settings config.Settings) (domain.Config, error) {
	if _, ok := settings.Probes["demo"]; ok {
		return settings.Probe("demo")
	}
	return resolve.New(domain.SeverityInfo, "demo values",
		resolve.WithCallerTag("demo"),
		resolve.OnSubscribe(),
		resolve.OnUnsubscribe(),
		resolve.OnFinalize(),
	)
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolP("verbose", "v", true, "Print console messages")
	demoCmd.Flags().String("out", "", "Also append records to this JSON lines file")
}

package bench

import (
	"fmt"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/varon/sercheck/cmd/util"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
)

var (
	BenchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Compare registered serializers in-process",
		Long:  `Serialize and deserialize the built-in fixture corpus with every registered tested serializer and report timing per engine. Engines that fail a fixture are reported and skipped.`,
		RunE:  run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "iterations"
	BenchCmd.PersistentFlags().Int(key, 1000, cmdUtil.WrapString("Number of round trips per engine over the fixture corpus"))
}

func run(cmd *cobra.Command, _ []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}
	common.InitLoggers(viper.GetString("log-level"))

	iterations := viper.GetInt("iterations")
	fixtures := serializer.Fixtures()
	registry := gometrics.NewRegistry()

	fmt.Printf("%-10s %10s %14s %14s %14s\n", "engine", "rounds", "mean/op", "p99/op", "max/op")

	for _, name := range serializer.Names() {
		tested, err := serializer.Get(name)
		if err != nil {
			return err
		}

		timer := gometrics.GetOrRegisterTimer("roundtrip."+name, registry)
		broken := false

		for i := 0; i < iterations && !broken; i++ {
			for _, f := range fixtures {
				typeName, err := common.NameOf(f.Value)
				if err != nil {
					return err
				}

				start := time.Now()
				data, err := tested.Serialize(f.Value)
				if err == nil {
					_, err = tested.Deserialize(data, typeName)
				}
				timer.UpdateSince(start)

				if err != nil {
					fmt.Printf("%-10s failed on fixture %q: %v\n", name, f.Name, err)
					broken = true
					break
				}
			}
		}

		if broken {
			continue
		}

		snapshot := timer.Snapshot()
		fmt.Printf("%-10s %10d %14s %14s %14s\n",
			name,
			snapshot.Count(),
			time.Duration(snapshot.Mean()).Round(time.Nanosecond),
			time.Duration(snapshot.Percentile(0.99)).Round(time.Nanosecond),
			time.Duration(snapshot.Max()).Round(time.Nanosecond),
		)
	}

	return nil
}

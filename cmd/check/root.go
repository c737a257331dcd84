package check

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/varon/sercheck/cmd/util"
	"github.com/varon/sercheck/verify/client"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/supervisor"
)

var (
	CheckCmd = &cobra.Command{
		Use:   "check <testedSerializer>",
		Short: "Verify a serializer against the fixture corpus",
		Long:  `Spawn a verification server process for the named tested serializer and round-trip the built-in fixture corpus through it, reporting pass/fail per fixture.`,
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "timeout"
	CheckCmd.PersistentFlags().Int(key, 10, cmdUtil.WrapString("Deadline in seconds for every frame read and write"))
}

func run(cmd *cobra.Command, args []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	tested, err := serializer.Get(args[0])
	if err != nil {
		return err
	}
	protoCodec, err := cmdUtil.GetCodec()
	if err != nil {
		return err
	}
	common.InitLoggers(viper.GetString("log-level"))

	// spawn a server process running this same binary
	binary, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve own binary path: %v", err)
	}
	port, err := freeport.GetFreePort()
	if err != nil {
		return fmt.Errorf("failed to pick a free port: %v", err)
	}

	sup := supervisor.New(supervisor.Config{
		BinaryPath:    binary,
		ExtraArgs:     []string{"serve", "--codec", viper.GetString("codec"), "--log-level", viper.GetString("log-level")},
		TimeoutSecond: viper.GetInt("timeout"),
	}, protoCodec, tested, nil)

	if err := sup.Start(port); err != nil {
		return err
	}
	defer func() {
		if err := sup.Stop(); err != nil {
			supervisor.Logger.Errorf("failed to stop server process: %v", err)
		}
	}()

	c, err := sup.GetClient()
	if err != nil {
		return err
	}
	if err := waitReady(c); err != nil {
		return err
	}

	// round-trip the corpus
	failed := 0
	for _, f := range serializer.Fixtures() {
		result, err := c.Test(f.Value)

		switch {
		case err == nil && reflect.DeepEqual(result, f.Value):
			fmt.Printf("PASS  %-18s\n", f.Name)
		case err == nil:
			failed++
			fmt.Printf("FAIL  %-18s value changed: sent %#v, got %#v\n", f.Name, f.Value, result)
		default:
			failed++
			fmt.Printf("FAIL  %-18s %v\n", f.Name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d fixtures failed", failed, len(serializer.Fixtures()))
	}
	fmt.Printf("all %d fixtures passed\n", len(serializer.Fixtures()))
	return nil
}

// waitReady polls until the spawned server accepts a round trip. A RemoteError
// counts as ready: the server answered, the engine just failed the value.
func waitReady(c *client.VerificationClient) error {
	var lastErr error
	for i := 0; i < 50; i++ {
		_, err := c.Test(0)
		var remoteErr *client.RemoteError
		if err == nil || errors.As(err, &remoteErr) {
			return nil
		}
		lastErr = err
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server process did not become ready: %v", lastErr)
}

package serve

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/varon/sercheck/cmd/util"
	"github.com/varon/sercheck/verify/common"
	"github.com/varon/sercheck/verify/serializer"
	"github.com/varon/sercheck/verify/server"
)

var (
	ServeCmd = &cobra.Command{
		Use:   "serve <testedSerializer> <port>",
		Short: "Start a verification server",
		Long:  `Start a verification server for the named tested serializer, bound to the given port. This is the process image the supervisor spawns. Configuration can be set via command line flags or environment variables with the SERCHECK_ prefix (e.g. SERCHECK_TIMEOUT=15).`,
		Args:  cobra.ExactArgs(2),
		RunE:  run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "host"
	ServeCmd.PersistentFlags().String(key, "127.0.0.1", cmdUtil.WrapString("The address on which the verification server will listen"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int(key, 10, cmdUtil.WrapString("Deadline in seconds for every frame read and write. 0 disables deadlines"))
}

// run starts the verification server and blocks until SIGINT/SIGTERM
func run(cmd *cobra.Command, args []string) error {
	if err := cmdUtil.BindCommandFlags(cmd); err != nil {
		return err
	}

	// positional arguments: <testedSerializer> <port>
	tested, err := serializer.Get(args[0])
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(args[1])
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", args[1])
	}

	protoCodec, err := cmdUtil.GetCodec()
	if err != nil {
		return err
	}

	config := common.ServerConfig{
		Endpoint:      net.JoinHostPort(viper.GetString("host"), strconv.Itoa(port)),
		TimeoutSecond: viper.GetInt("timeout"),
		LogLevel:      viper.GetString("log-level"),
	}
	common.InitLoggers(config.LogLevel)
	server.Logger.Infof(config.String())

	serv := server.NewVerificationServer(config, protoCodec, tested)
	if err := serv.Start(); err != nil {
		return err
	}

	// serve until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	return serv.Stop()
}

package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Verification server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for a verification server.
type ServerConfig struct {
	// Endpoint is the address the server listens on (e.g. "127.0.0.1:2323").
	// A port of 0 lets the OS pick one.
	Endpoint string

	// TimeoutSecond is applied as a deadline to every frame read and write.
	// 0 disables deadlines, reproducing fully blocking frame I/O.
	TimeoutSecond int

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	sb.WriteString("\nVERIFICATION SERVER\n")
	addField("Endpoint", c.Endpoint)
	addField("Frame Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Verification client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for a verification client.
type ClientConfig struct {
	// Endpoint is the address of the verification server
	Endpoint string

	// TimeoutSecond is applied as a deadline to every frame read and write.
	// 0 disables deadlines.
	TimeoutSecond int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	sb.WriteString("\nVERIFICATION CLIENT\n")
	addField("Endpoint", c.Endpoint)
	addField("Frame Timeout", strconv.Itoa(c.TimeoutSecond)+" sec")

	return sb.String()
}

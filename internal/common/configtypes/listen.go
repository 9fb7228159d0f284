package configtypes

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ParseListenAddress splits a listen address into host and port.
// Accepted forms are ":8080", "8080", "localhost:8080" and "10.0.0.1:8080".
func ParseListenAddress(listen string) (host string, port int, err error) {
	if listen == "" {
		return "", 0, fmt.Errorf("listen address is empty")
	}

	portStr := listen
	if strings.Contains(listen, ":") {
		host, portStr, err = net.SplitHostPort(listen)
		if err != nil {
			return "", 0, fmt.Errorf("invalid listen address format: %s: %w", listen, err)
		}
	}

	port, err = strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in listen address: %s", listen)
	}
	return host, port, nil
}

// ValidateListenAddress checks the format and the port range of listen.
func ValidateListenAddress(listen string) error {
	_, port, err := ParseListenAddress(listen)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// GetPortFromListen extracts the port number from a listen address.
func GetPortFromListen(listen string) (int, error) {
	_, port, err := ParseListenAddress(listen)
	return port, err
}

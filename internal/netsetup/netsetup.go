// Package netsetup is a thin wrapper over the macOS `networksetup`
// utility for enabling, disabling, and reordering network services. It
// shells out and reports failures with the captured output; there is no
// logic here worth reimplementing.
package netsetup

import (
	"fmt"
	"os/exec"
	"strings"

	"assetctl/internal/logger"
)

// SetServiceEnabled turns the named network service on or off.
func SetServiceEnabled(service string, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}
	return run("-setnetworkserviceenabled", service, state)
}

// OrderServices sets the service priority order to exactly the given list.
// networksetup rejects a partial list, so callers must pass every service.
func OrderServices(services []string) error {
	if len(services) == 0 {
		return fmt.Errorf("no services given")
	}
	return run(append([]string{"-ordernetworkservices"}, services...)...)
}

// ListServices returns all network services in their current priority
// order. Disabled services are included, without the marker prefix.
func ListServices() ([]string, error) {
	cmd := exec.Command("networksetup", "-listallnetworkservices")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("networksetup -listallnetworkservices failed: %v\nOutput: %s", err, output)
	}
	return parseServiceList(string(output)), nil
}

// parseServiceList parses -listallnetworkservices output: a banner line
// followed by one service per line, disabled ones prefixed with '*'.
func parseServiceList(output string) []string {
	services := []string{}
	for i, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && strings.Contains(line, "asterisk") {
			continue // banner explaining the '*' marker
		}
		services = append(services, strings.TrimPrefix(line, "*"))
	}
	return services
}

func run(args ...string) error {
	cmd := exec.Command("networksetup", args...)
	logger.Debug("[DEBUG] Running command: networksetup %s\n", strings.Join(args, " "))
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("networksetup %s failed: %v\nOutput: %s", args[0], err, output)
	}
	return nil
}

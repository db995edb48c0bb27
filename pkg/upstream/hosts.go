package upstream

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

const defaultHostsfile = "/etc/hosts"

func (c *Client) loadHostsFile(path string) error {
	if len(path) == 0 {
		if _, err := os.Stat(defaultHostsfile); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		path = defaultHostsfile
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("hosts file '%s' not found", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		ip := net.ParseIP(fields[0])
		if ip == nil || ip.To4() == nil {
			continue
		}

		for _, host := range fields[1:] {
			c.hosts[host] = append(c.hosts[host], ip.String())
		}
	}

	return scanner.Err()
}

// Command anglemon tails the firmware's report feed over a serial port and
// renders angles in degrees. Wiring aside, it is a line splitter: the feed is
// `tacho <port> <rotations> <millidegrees> <motor>`, one line per present
// port per poll.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go.bug.st/serial"
	"gopkg.in/yaml.v3"
)

type config struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

func loadConfig(path string) (config, error) {
	cfg := config{Port: "/dev/ttyACM0", Baud: 115200}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // defaults are fine
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	cfgPath := flag.String("config", "anglemon.yaml", "config file")
	port := flag.String("port", "", "serial port (overrides config)")
	baud := flag.Int("baud", 0, "baud rate (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "anglemon:", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}

	p, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		fmt.Fprintf(os.Stderr, "anglemon: open %s: %v\n", cfg.Port, err)
		os.Exit(1)
	}
	defer p.Close()

	fmt.Printf("listening on %s @ %d\n", cfg.Port, cfg.Baud)
	sc := bufio.NewScanner(p)
	for sc.Scan() {
		rec, ok := parseLine(sc.Text())
		if !ok {
			continue // boot noise, partial lines
		}
		fmt.Printf("port %d  %10.3f°  %s\n", rec.Port, rec.Degrees(), rec.Motor)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "anglemon: read:", err)
		os.Exit(1)
	}
}

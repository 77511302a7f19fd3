package main

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"golang.org/x/net/context"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/blescan/blescan"
	"github.com/blescan/blescan/replay"
	"github.com/blescan/blescan/uuid"
)

func main() {
	app := cli.NewApp()

	app.Name = "blescan"
	app.Usage = "A CLI tool for scanning BLE advertisement captures"
	app.Version = "0.0.1"
	app.Action = cli.ShowAppHelp

	app.Commands = []cli.Command{
		{
			Name:    "scan",
			Aliases: []string{"s"},
			Usage:   "Scan a capture file with specified filter",
			Action:  scan,
			Flags: []cli.Flag{
				cli.StringFlag{Name: "capture, c", Usage: "capture file (addr,rssi,type,hexdata per line)"},
				cli.DurationFlag{Name: "duration, d", Value: time.Second * 5, Usage: "duration"},
				cli.BoolFlag{Name: "first", Usage: "stop at the first matching device"},
				cli.StringFlag{Name: "name, n", Usage: "name"},
				cli.StringFlag{Name: "name-re", Usage: "name pattern"},
				cli.StringFlag{Name: "addr, a", Usage: "addr"},
				cli.StringFlag{Name: "addr-re", Usage: "addr pattern"},
				cli.StringSliceFlag{Name: "svc", Usage: "advertised service UUID (repeatable)"},
				cli.BoolTFlag{Name: "active", Usage: "active scanning"},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func scan(c *cli.Context) error {
	if c.String("capture") == "" {
		return errors.New("capture file is required")
	}
	events, err := replay.LoadFile(c.String("capture"))
	if err != nil {
		return err
	}
	f, err := filter(c)
	if err != nil {
		return err
	}

	d := c.Duration("duration")
	if c.Bool("first") {
		d = -1
	}
	s, err := blescan.NewScanner(replay.New(events, 10*time.Millisecond),
		blescan.OptFilter(f),
		blescan.OptDuration(d),
		blescan.OptActiveScan(c.BoolT("active")),
	)
	if err != nil {
		return errors.Wrap(err, "can't new scanner")
	}

	fmt.Printf("Scanning for %s...\n", d)
	ch, err := s.Scan(context.Background())
	if err != nil {
		return errors.Wrap(err, "can't scan")
	}
	for d := range ch {
		fmt.Printf("%s\n", d)
		for _, u := range d.Event.Advertisement.Services {
			if n := uuid.ServiceName(u); n != "" {
				fmt.Printf("    %s [%s]\n", u, n)
			} else {
				fmt.Printf("    %s\n", u)
			}
		}
	}
	return s.Err()
}

func filter(c *cli.Context) (*blescan.Filter, error) {
	cfg := blescan.FilterConfig{
		Address:  c.String("addr"),
		Name:     c.String("name"),
		Services: c.StringSlice("svc"),
	}
	if p := c.String("addr-re"); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, "can't compile addr pattern")
		}
		cfg.AddressPattern = re
	}
	if p := c.String("name-re"); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, errors.Wrap(err, "can't compile name pattern")
		}
		cfg.NamePattern = re
	}
	return blescan.NewFilter(cfg)
}

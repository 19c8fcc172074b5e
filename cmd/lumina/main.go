// Copyright 2025 The Lumina Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command lumina is a thin line driver over the search core. It is
// not a full UCI state machine; protocol handling belongs to an
// external front end that consumes the engine package directly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/luminachess/lumina/engine"
	"github.com/luminachess/lumina/internal/config"
	"github.com/luminachess/lumina/internal/logging"
)

var (
	buildVersion = "(devel)"

	configPath = flag.String("config", "lumina.toml", "configuration file")
	cpuprofile = flag.Bool("cpuprofile", false, "write a cpu profile")
	version    = flag.Bool("version", false, "only print version and exit")
)

var log = logging.GetLog()

func main() {
	flag.Parse()
	if *version {
		fmt.Printf("lumina %v\n", buildVersion)
		return
	}
	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	coord, err := engine.NewCoordinator(cfg.HashSizeMB)
	if err != nil {
		log.Fatalf("hash table: %v", err)
	}

	p := message.NewPrinter(language.English)
	coord.PublishPV = func(stats engine.Stats, score int32, pv []engine.Move) {
		line := make([]string, len(pv))
		for i, m := range pv {
			line[i] = m.String()
		}
		p.Printf("depth %d score %d nodes %d pv %s\n",
			stats.Depth, score, stats.Nodes, strings.Join(line, " "))
	}

	run(coord, cfg)
}

// run reads commands line by line until EOF or quit.
func run(coord *engine.Coordinator, cfg config.Settings) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit":
			return
		case "fen":
			if err := coord.SetPosition(strings.Join(fields[1:], " ")); err != nil {
				log.Errorf("%v", err)
			}
		case "moves":
			if err := coord.SetPositionFromMoves(fields[1:]); err != nil {
				log.Errorf("%v", err)
			}
		case "hash":
			var mb int
			if _, err := fmt.Sscanf(strings.Join(fields[1:], " "), "%d", &mb); err == nil {
				if err := coord.SetHashSize(mb); err != nil {
					log.Errorf("%v", err)
				}
			}
		case "go":
			depth := int32(cfg.Depth)
			if len(fields) > 1 {
				var d int
				if _, err := fmt.Sscanf(fields[1], "%d", &d); err == nil {
					depth = int32(d)
				}
			}
			res, err := coord.Search(depth, time.Duration(cfg.MoveTimeMs)*time.Millisecond, cfg.Workers)
			if err != nil {
				log.Errorf("search: %v", err)
				continue
			}
			fmt.Printf("bestmove %v\n", res.BestMove)
		case "stop":
			coord.Stop()
		case "print":
			fmt.Println(coord.Position().String())
		default:
			log.Warningf("unknown command %q", fields[0])
		}
	}
}

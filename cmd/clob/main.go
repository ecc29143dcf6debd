// Command clob runs the matching engine behind an interactive shell.
// Trades can optionally be streamed to Kafka with -brokers/-topic.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clob/jobs/feed"
	"clob/service"
)

func main() {
	brokers := flag.String("brokers", "", "comma-separated Kafka brokers for the trade feed (optional)")
	topic := flag.String("topic", "trades", "Kafka topic for the trade feed")
	flag.Parse()

	if err := run(*brokers, *topic); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(brokers, topic string) error {
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg := service.Config{Logger: log}

	if brokers != "" {
		f, err := feed.New(strings.Split(brokers, ","), topic, log)
		if err != nil {
			return fmt.Errorf("trade feed: %w", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		f.Start(ctx)
		defer f.Close()
		cfg.Feed = f
	}

	svc := service.New(cfg)
	defer svc.Close()

	fmt.Println("Order book ready. Type H for help.")

	nextID := uint64(1000)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("> ")
			continue
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Printf("%serror: %v%s\n> ", colRed, err, colReset)
			continue
		}

		switch cmd.kind {
		case actionAdd:
			id := cmd.id
			if !cmd.hasID {
				id = nextID
				nextID++
			} else if id >= nextID {
				nextID = id + 1
			}
			trades := svc.AddOrder(cmd.side, cmd.typ, cmd.price, cmd.qty, id)
			printTrades(trades)
			if _, resting := svc.GetOrder(id); resting {
				fmt.Printf("order #%d resting\n", id)
			}

		case actionCancel:
			if svc.CancelOrder(cmd.id) {
				fmt.Printf("order #%d cancelled\n", cmd.id)
			} else {
				fmt.Printf("%sorder #%d not found%s\n", colYellow, cmd.id, colReset)
			}

		case actionModify:
			trades := svc.ModifyOrder(cmd.id, cmd.side, cmd.price, cmd.qty)
			printTrades(trades)

		case actionShow:
			printBook(svc.Snapshot())
			fmt.Printf("%d resting order(s)\n", svc.Size())

		case actionHelp:
			printHelp()

		case actionQuit:
			fmt.Println("bye")
			return nil
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

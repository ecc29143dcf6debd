package main

import (
	"fmt"
	"strconv"
	"strings"

	"clob/domain/book"
)

type actionKind int

const (
	actionAdd actionKind = iota
	actionCancel
	actionModify
	actionShow
	actionHelp
	actionQuit
)

type command struct {
	kind  actionKind
	side  book.Side
	typ   book.OrderType
	price int64
	qty   int64
	id    uint64
	hasID bool
}

func parseSide(s string) (book.Side, error) {
	switch s {
	case "B", "Buy", "buy":
		return book.Buy, nil
	case "S", "Sell", "sell":
		return book.Sell, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func parseOrderType(s string) (book.OrderType, error) {
	switch s {
	case "GTC", "GoodTillCancel":
		return book.GoodTillCancel, nil
	case "GFD", "GoodForDay":
		return book.GoodForDay, nil
	case "FAK", "FillAndKill":
		return book.FillAndKill, nil
	case "FOK", "FillOrKill":
		return book.FillOrKill, nil
	case "MKT", "Market":
		return book.Market, nil
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

func parsePrice(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	return v, nil
}

func parseQty(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return v, nil
}

func parseID(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q", s)
	}
	return v, nil
}

func parseCommand(line string) (command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return command{}, fmt.Errorf("empty command")
	}

	var cmd command
	var err error
	switch strings.ToLower(tokens[0]) {
	case "a", "add":
		// A <side> <orderType> <price> <quantity> [orderId]
		if len(tokens) < 5 || len(tokens) > 6 {
			return cmd, fmt.Errorf("add requires: A <side> <orderType> <price> <quantity> [orderId]")
		}
		cmd.kind = actionAdd
		if cmd.side, err = parseSide(tokens[1]); err != nil {
			return cmd, err
		}
		if cmd.typ, err = parseOrderType(tokens[2]); err != nil {
			return cmd, err
		}
		if cmd.price, err = parsePrice(tokens[3]); err != nil {
			return cmd, err
		}
		if cmd.qty, err = parseQty(tokens[4]); err != nil {
			return cmd, err
		}
		if len(tokens) == 6 {
			if cmd.id, err = parseID(tokens[5]); err != nil {
				return cmd, err
			}
			cmd.hasID = true
		}
		// Market orders ignore the price argument.
		if cmd.typ == book.Market {
			cmd.price = book.PriceMarket
		}

	case "c", "cancel":
		if len(tokens) != 2 {
			return cmd, fmt.Errorf("cancel requires: C <orderId>")
		}
		cmd.kind = actionCancel
		if cmd.id, err = parseID(tokens[1]); err != nil {
			return cmd, err
		}

	case "m", "modify":
		// M <orderId> <side> <price> <quantity>
		if len(tokens) != 5 {
			return cmd, fmt.Errorf("modify requires: M <orderId> <side> <price> <quantity>")
		}
		cmd.kind = actionModify
		if cmd.id, err = parseID(tokens[1]); err != nil {
			return cmd, err
		}
		if cmd.side, err = parseSide(tokens[2]); err != nil {
			return cmd, err
		}
		if cmd.price, err = parsePrice(tokens[3]); err != nil {
			return cmd, err
		}
		if cmd.qty, err = parseQty(tokens[4]); err != nil {
			return cmd, err
		}

	case "s", "show":
		cmd.kind = actionShow
	case "h", "help":
		cmd.kind = actionHelp
	case "q", "quit", "exit":
		cmd.kind = actionQuit
	default:
		return cmd, fmt.Errorf("unknown command %q", tokens[0])
	}
	return cmd, nil
}

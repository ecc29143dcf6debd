package main

import (
	"fmt"

	"clob/domain/book"
)

// ANSI colour codes for the interactive display.
const (
	colReset  = "\033[0m"
	colBold   = "\033[1m"
	colRed    = "\033[31m"
	colGreen  = "\033[32m"
	colYellow = "\033[33m"
	colCyan   = "\033[36m"
)

const rule = "--------------------------------------------------"

// printBook renders asks worst-to-best above bids best-to-worst, the
// conventional ladder layout.
func printBook(snap book.LevelsInfo) {
	fmt.Println(rule)
	fmt.Printf("%s[Sell Orders in the system] #%d%s\n", colRed+colBold, len(snap.Asks), colReset)
	for i := len(snap.Asks) - 1; i >= 0; i-- {
		printLevel(snap.Asks[i], colRed)
	}
	fmt.Printf("%s[Buy Orders in the system] #%d%s\n", colGreen+colBold, len(snap.Bids), colReset)
	for _, l := range snap.Bids {
		printLevel(l, colGreen)
	}
	fmt.Println(rule)
}

func printLevel(l book.LevelInfo, col string) {
	fmt.Printf("  %sPrice: %-10d Quantity: %-10d Orders: %d%s\n",
		col, l.Price, l.Quantity, l.Count, colReset)
}

func printTrades(trades []book.Trade) {
	if len(trades) == 0 {
		fmt.Printf("%sno trades executed%s\n", colYellow, colReset)
		return
	}
	for _, t := range trades {
		fmt.Printf("%sTrade: buy #%d matched sell #%d at price=%d qty=%d%s\n",
			colCyan, t.Buy.OrderID, t.Sell.OrderID, t.Price, t.Qty, colReset)
	}
	fmt.Printf("%s%d trade(s) executed%s\n", colCyan, len(trades), colReset)
}

func printHelp() {
	fmt.Printf("%s%s=== Order Book Commands ===%s\n", colCyan, colBold, colReset)
	fmt.Printf("%sA <side> <orderType> <price> <quantity> [orderId]%s - add order (id optional)\n", colGreen, colReset)
	fmt.Printf("%sC <orderId>%s                                       - cancel order\n", colGreen, colReset)
	fmt.Printf("%sM <orderId> <side> <price> <quantity>%s             - modify order\n", colGreen, colReset)
	fmt.Printf("%sS%s                                                 - show the book\n", colGreen, colReset)
	fmt.Printf("%sH%s                                                 - this help\n", colGreen, colReset)
	fmt.Printf("%sQ%s                                                 - quit\n", colGreen, colReset)
	fmt.Println("sides: B|Buy|buy S|Sell|sell")
	fmt.Println("types: GTC GFD FAK FOK MKT")
}

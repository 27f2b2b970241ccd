package main

import "github.com/hotelbook/booking-api/internal/cli"

func main() {
	cli.Execute()
}

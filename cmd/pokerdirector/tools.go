package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/chips"
	"github.com/weedbox/pokerdirector/config"
	"github.com/weedbox/pokerdirector/payout"
)

type BlindsCmd struct {
	Players      int    `short:"p" help:"Number of players (defaults to config)"`
	Duration     int    `short:"d" help:"Target duration in minutes (defaults to config)"`
	Format       string `short:"f" help:"Tournament format (defaults to config)"`
	ChipSet      string `help:"Chip denominations, e.g. 25,100,500 (defaults to config)"`
	LevelMinutes int    `help:"Level duration in minutes (defaults to config)"`
	AnteLevel    int    `help:"First level with antes, 0 keeps the configured setting"`
	JSON         bool   `help:"Print JSON instead of a table"`
}

func (c *BlindsCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, cli.Env...)
	if err != nil {
		return err
	}

	opts := cfg.GenerationOptions()
	if c.Format != "" {
		opts.TournamentFormat = c.Format
	}
	if c.ChipSet != "" {
		cs, err := chips.Parse(c.ChipSet)
		if err != nil {
			return err
		}
		opts.ChipSet = cs
	}
	if c.LevelMinutes > 0 {
		opts.LevelDurationMins = c.LevelMinutes
	}
	if c.AnteLevel > 0 {
		opts.IncludeAnte = true
		opts.AnteStartLevel = c.AnteLevel
	}

	duration := cfg.Defaults.DurationMins
	if c.Duration > 0 {
		duration = c.Duration
	}
	players := cfg.Defaults.PlayerCount
	if c.Players > 0 {
		players = c.Players
	}

	req := blind.ScheduleRequest{
		PlayerCount:  players,
		DurationMins: duration,
		Format:       opts.TournamentFormat,
		Options:      opts,
	}
	if err := req.Validate(); err != nil {
		return err
	}
	schedule := blind.BuildSchedule(req)

	if c.JSON {
		return printJSON(os.Stdout, schedule)
	}
	return printSchedule(os.Stdout, schedule)
}

type StackCmd struct {
	ChipSet  string  `help:"Chip denominations (defaults to config)"`
	Format   string  `short:"f" help:"Tournament format (defaults to config)"`
	Duration float64 `short:"d" help:"Duration in hours"`
}

func (c *StackCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config, cli.Env...)
	if err != nil {
		return err
	}

	cs := chips.ParseOrDefault(cfg.Defaults.ChipSet)
	if c.ChipSet != "" {
		if cs, err = chips.Parse(c.ChipSet); err != nil {
			return err
		}
	}

	format := cfg.Defaults.Format
	if c.Format != "" {
		format = c.Format
	}

	var hours *float64
	if c.Duration > 0 {
		hours = blind.DurationHours(c.Duration)
	}
	return printJSON(os.Stdout, blind.CalculateInitialStack(cs, format, hours))
}

type PayoutsCmd struct {
	Players  int     `short:"p" required:"" help:"Number of entrants"`
	BuyIn    float64 `short:"b" required:"" help:"Buy-in amount"`
	Rebuys   int     `help:"Total rebuys"`
	Rebuy    float64 `help:"Rebuy amount"`
	AddOns   int     `help:"Total add-ons"`
	AddOn    float64 `help:"Add-on amount"`
	FeeType  string  `default:"none" enum:"none,percentage,fixed" help:"House fee type"`
	FeeValue float64 `help:"House fee value"`
}

func (c *PayoutsCmd) Run(cli *CLI) error {
	result := payout.CalculatePrizePoolAndPayouts(payout.PrizePoolData{
		TotalBuyIns:   c.Players,
		TotalRebuys:   c.Rebuys,
		TotalAddOns:   c.AddOns,
		BuyInAmount:   c.BuyIn,
		RebuyAmount:   c.Rebuy,
		AddOnAmount:   c.AddOn,
		HouseFeeType:  c.FeeType,
		HouseFeeValue: c.FeeValue,
		PayoutPlaces:  payout.SuggestPayoutStructure(c.Players),
	})
	return printPayouts(os.Stdout, result)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSchedule(w io.Writer, schedule blind.Schedule) error {
	fmt.Fprintf(w, "Starting stack: %d (%d/%d)\n\n", schedule.Stack.StartingStack, schedule.Stack.SmallBlind, schedule.Stack.BigBlind)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tSB\tBB\tANTE\tMINUTES")
	for _, l := range schedule.Levels {
		if l.IsBreak {
			fmt.Fprintf(tw, "%d\tBREAK\t\t\t%d\n", l.Level, l.DurationMins)
			continue
		}
		ante := "-"
		if l.Ante > 0 {
			ante = fmt.Sprint(l.Ante)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%d\n", l.Level, l.SmallBlind, l.BigBlind, ante, l.DurationMins)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d minutes\n", blind.TotalDurationMins(schedule.Levels))
	return err
}

func printPayouts(w io.Writer, result payout.Result) error {
	fmt.Fprintf(w, "Gross: %.2f  House: %.2f  Net: %.2f\n\n", result.GrossPrizePool, result.HouseCut, result.NetPrizePool)
	if !result.IsValidStructure {
		fmt.Fprintln(w, result.ValidationMessage)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLACE\tPERCENT\tAMOUNT")
	for _, d := range result.PayoutDetails {
		fmt.Fprintf(tw, "%d\t%.2f%%\t%.2f\n", d.Position, d.Percentage, d.Amount)
	}
	return tw.Flush()
}

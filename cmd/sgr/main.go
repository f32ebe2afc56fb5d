package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "sugoroku/internal/cli"
	"sugoroku/internal/config"
	"sugoroku/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "sgr",
		Short:        "Sugoroku CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newStateCmd(&apiBase),
		newRollCmd(&apiBase),
		newBonusCmd(&apiBase),
		newBuyCmd(&apiBase),
		newPassCmd(&apiBase),
		newNextCmd(&apiBase),
		newSkipCmd(&apiBase),
		newSellCmd(&apiBase),
		newEndCmd(&apiBase),
		newStandingsCmd(&apiBase),
		newSheetCmd(&apiBase),
		newBoardCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func activeGame() (cl.State, error) {
	st, err := cl.LoadState()
	if err != nil {
		return cl.State{}, err
	}
	return st, nil
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new [name...]",
		Short: "Start a new game with 2-4 players",
		Args:  cobra.MaximumNArgs(game.MaxPlayers),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, game.MaxPlayers)
			for _, a := range args {
				if strings.TrimSpace(a) != "" {
					names = append(names, strings.TrimSpace(a))
				}
			}
			if len(names) == 0 {
				var err error
				names, err = promptPlayerNames()
				if err != nil {
					return err
				}
			}
			if len(names) < game.MinPlayers || len(names) > game.MaxPlayers {
				return fmt.Errorf("need %d to %d players, got %d", game.MinPlayers, game.MaxPlayers, len(names))
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			view, err := newClient(apiBase).StartGame(ctx, names)
			if err != nil {
				return err
			}
			if err := cl.SaveState(cl.State{GameID: view.ID, Players: names}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Game %s started with %d players.", view.ID, len(names)))
			renderBoard(view)
			renderSession(view)
			return nil
		},
	}
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the active game",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			view, err := newClient(apiBase).GameState(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderSession(view)
			return nil
		},
	}
}

func newRollCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "roll",
		Short: "Roll the die and move",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := newClient(apiBase).Roll(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderRoll(out)
			return nil
		},
	}
}

func newBonusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bonus",
		Short: "Play the bottle flip bonus round",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := newClient(apiBase).Bonus(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderBonus(out)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy",
		Short: "Accept the pending investment offer",
		RunE:  investmentRunE(apiBase, true),
	}
}

func newPassCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pass",
		Short: "Decline the pending investment offer",
		RunE:  investmentRunE(apiBase, false),
	}
}

func investmentRunE(apiBase *string, accept bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := activeGame()
		if err != nil {
			return err
		}
		ctx, cancel := withTimeout(cmd)
		defer cancel()
		out, err := newClient(apiBase).DecideInvestment(ctx, st.GameID, accept)
		if err != nil {
			return err
		}
		renderDecision(out)
		return nil
	}
}

func newNextCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance the price chart one candle",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := newClient(apiBase).AdvanceCandle(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderCandle(out)
			return nil
		},
	}
}

func newSkipCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Jump the price chart to its final candle",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := newClient(apiBase).SkipToEnd(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderCandle(out)
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell",
		Short: "Sell the holding at the current candle",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := newClient(apiBase).Sell(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderSale(out)
			return nil
		},
	}
}

func newEndCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End the current player's turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			client := newClient(apiBase)
			out, err := client.EndTurn(ctx, st.GameID)
			if err != nil {
				return err
			}
			if !out.Finished {
				printInfo(fmt.Sprintf("Turn %d, seat %d to play.", out.NextTurn, out.NextSeat))
				return nil
			}
			printSuccess("Game over!")
			rows, err := client.Standings(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderStandings(rows)
			return nil
		},
	}
}

func newStandingsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show current standings by equity",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			rows, err := newClient(apiBase).Standings(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderStandings(rows)
			return nil
		},
	}
}

func newSheetCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sheet [seat]",
		Short: "Show a player's financial statements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			client := newClient(apiBase)

			seat := -1
			if len(args) > 0 {
				seat, err = strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return fmt.Errorf("invalid seat %q", args[0])
				}
			} else {
				view, err := client.GameState(ctx, st.GameID)
				if err != nil {
					return err
				}
				seat = view.ActiveSeat
			}

			out, err := client.Statement(ctx, st.GameID, seat)
			if err != nil {
				return err
			}
			renderSheet(out)
			return nil
		},
	}
}

func newBoardCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Draw the board with player positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := activeGame()
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			view, err := newClient(apiBase).GameState(ctx, st.GameID)
			if err != nil {
				return err
			}
			renderBoard(view)
			return nil
		},
	}
}

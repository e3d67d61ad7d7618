package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brainbreak/brainbreak-api/internal/gameclient"
	"github.com/brainbreak/brainbreak-api/internal/handler"
	"github.com/brainbreak/brainbreak-api/internal/model"
)

func newPlayCmd() *cobra.Command {
	var host bool
	var mode string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a multiplayer match",
		Long: `Play a multiplayer memory match from the terminal.

With --host a new room is created and the command waits for an opponent;
otherwise it joins the oldest available room.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Email == "" {
				return fmt.Errorf("not signed in, run 'brainbreak signin' first")
			}
			if _, err := gameclient.DifficultyByName(mode); err != nil {
				return err
			}

			ctx := cmd.Context()

			var room *model.Room
			var err error
			if host {
				room, err = client.CreateRoom(ctx)
				if err != nil {
					return err
				}
				room, err = client.UpdateRoom(ctx, room.RoomID, handler.UpdateRoomRequest{GameMode: &mode})
				if err != nil {
					return err
				}
				fmt.Printf("Room %s created, waiting for an opponent...\n", room.RoomID)
			} else {
				room, err = client.JoinRoom(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Joined room %s hosted by %s\n", room.RoomID, room.HostUsername)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
			game, err := gameclient.NewGame(client, gameclient.RealClock{}, &logger, room, cfg.Email)
			if err != nil {
				return err
			}

			return runMatch(cmd, game)
		},
	}

	cmd.Flags().BoolVar(&host, "host", false, "Create a new room instead of joining one")
	cmd.Flags().StringVar(&mode, "mode", gameclient.DefaultDifficulty, "Difficulty when hosting: easy, medium, hard")

	return cmd
}

func runMatch(cmd *cobra.Command, game *gameclient.Game) error {
	ctx := cmd.Context()

	if game.Phase() == gameclient.PhaseWaiting {
		if err := game.WaitForOpponent(ctx); err != nil {
			return err
		}
	}

	fmt.Printf("Match started, you are the %s. Memorize the board!\n", game.Role())
	printBoard(game.Deck(), true)
	if wait := time.Until(game.MemorizeDeadline()); wait > 0 {
		time.Sleep(wait)
	}
	if err := game.Refresh(ctx); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for !game.Over() {
		if !game.MyTurn() {
			fmt.Println("Waiting for your opponent...")
			if err := game.WaitForTurn(ctx); err != nil {
				return err
			}
			continue
		}

		printBoard(game.Deck(), false)
		fmt.Printf("Score: you %d, opponent %d. Time left: %s\n",
			game.MyScore(), game.OpponentScore(), game.TimeRemaining().Round(time.Second))

		result, err := playAttempt(game, reader)
		if err != nil {
			fmt.Println(err)
			continue
		}

		if result.Matched {
			fmt.Println("Match! Go again.")
		} else {
			fmt.Printf("No match: %s and %s. Opponent's turn.\n",
				game.Deck()[result.First].Symbol, game.Deck()[result.Second].Symbol)
		}
		game.PushMove(ctx, result.Matched)
	}

	if err := game.Finish(ctx); err != nil {
		return err
	}

	printBoard(game.Deck(), false)
	switch winner := game.Room().Winner; {
	case winner == model.WinnerDraw:
		fmt.Println("It's a draw!")
	case winner == string(game.Role()):
		fmt.Printf("You win! Final score %d to %d.\n", game.MyScore(), game.OpponentScore())
	default:
		fmt.Printf("You lose. Final score %d to %d.\n", game.MyScore(), game.OpponentScore())
	}
	return nil
}

// playAttempt prompts for two cards and resolves them locally.
func playAttempt(game *gameclient.Game, reader *bufio.Reader) (gameclient.FlipResult, error) {
	first, err := promptCard(game, reader, "First card: ")
	if err != nil {
		return gameclient.FlipResult{}, err
	}
	if _, err := game.Flip(first); err != nil {
		return gameclient.FlipResult{}, err
	}
	fmt.Printf("Card %d is %s\n", first, game.Deck()[first].Symbol)

	second, err := promptCard(game, reader, "Second card: ")
	if err != nil {
		return gameclient.FlipResult{}, err
	}
	return game.Flip(second)
}

func promptCard(game *gameclient.Game, reader *bufio.Reader, prompt string) (int, error) {
	fmt.Print(prompt)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("enter a card number between 0 and %d", len(game.Deck())-1)
	}
	return index, nil
}

func printBoard(deck gameclient.Deck, reveal bool) {
	const perRow = 4
	for i, card := range deck {
		switch {
		case reveal || card.Matched || card.FaceUp:
			fmt.Printf("[%2d %s ]", i, card.Symbol)
		default:
			fmt.Printf("[%2d ? ]", i)
		}
		if (i+1)%perRow == 0 {
			fmt.Println()
		}
	}
	if len(deck)%perRow != 0 {
		fmt.Println()
	}
}

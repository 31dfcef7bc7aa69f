package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"retroboard/internal/client"
	"retroboard/internal/drag"
	"retroboard/internal/model"
)

var (
	serverURL string
	userID    string
	userName  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "retroctl",
		Short:         "Command-line client for the retro board server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "server base URL")
	root.PersistentFlags().StringVar(&userID, "user-id", "retroctl", "user id sent with mutations")
	root.PersistentFlags().StringVar(&userName, "user-name", "retroctl", "user name sent with mutations")

	root.AddCommand(newBoardCmd(), newCardCmd(), newWatchCmd())
	return root
}

func newBoardCmd() *cobra.Command {
	board := &cobra.Command{Use: "board", Short: "Manage boards"}

	board.AddCommand(&cobra.Command{
		Use:   "create <title>",
		Short: "Create a new board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL, userID, userName)
			created, err := c.CreateBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created board %s (%s)\n", created.Title, created.ID)
			return nil
		},
	})

	board.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverURL, userID, userName)
			boards, err := c.ListBoards(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range boards {
				fmt.Printf("%v  %v (%v cards)\n", b["id"], b["title"], b["cardCount"])
			}
			return nil
		},
	})

	board.AddCommand(&cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid board id: %w", err)
			}
			c := client.New(serverURL, userID, userName)
			return c.DeleteBoard(cmd.Context(), boardID)
		},
	})

	return board
}

func newCardCmd() *cobra.Command {
	card := &cobra.Command{Use: "card", Short: "Manage cards"}

	card.AddCommand(&cobra.Command{
		Use:   "add <board-id> <column-id> <content...>",
		Short: "Add a card to a column",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid board id: %w", err)
			}
			columnID := model.ColumnID(args[1])
			if !columnID.Valid() {
				return fmt.Errorf("unknown column %q (use wentWell, toImprove or actionItems)", args[1])
			}

			c := client.New(serverURL, userID, userName)
			if err := confirm(cmd.Context(), c, boardID); err != nil {
				return err
			}
			return c.AddCard(cmd.Context(), boardID, columnID, strings.Join(args[2:], " "))
		},
	})

	card.AddCommand(&cobra.Command{
		Use:   "move <board-id> <card-id> <source-column> <dest-column> <index>",
		Short: "Move a card to an index in a column",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid board id: %w", err)
			}
			cardID, err := uuid.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid card id: %w", err)
			}
			source := model.ColumnID(args[2])
			dest := model.ColumnID(args[3])
			if !source.Valid() || !dest.Valid() {
				return errors.New("unknown column (use wentWell, toImprove or actionItems)")
			}
			index, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("invalid index: %w", err)
			}

			c := client.New(serverURL, userID, userName)
			if err := confirm(cmd.Context(), c, boardID); err != nil {
				return err
			}
			return c.MoveCard(cmd.Context(), boardID, drag.MoveRequest{
				DraggedCardID:    cardID,
				SourceColumnID:   source,
				DestColumnID:     dest,
				DestinationIndex: index,
			})
		},
	})

	return card
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <board-id>",
		Short: "Follow a board's change stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boardID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid board id: %w", err)
			}

			c := client.New(serverURL, userID, userName)
			err = c.Watch(cmd.Context(), boardID, func(snapshot *model.Board) {
				if snapshot == nil {
					fmt.Println("board deleted")
					return
				}
				fmt.Printf("%s: %d cards", snapshot.Title, len(snapshot.Cards))
				for _, columnID := range model.ColumnIDs {
					fmt.Printf("  %s:%d", columnID, len(snapshot.Columns[columnID].CardIDs))
				}
				fmt.Println()
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// confirm runs the change stream just long enough for the replica to
// confirm the board, the precondition for every mutation. A one-shot
// command subscribes, takes the catch-up snapshot, then mutates.
func confirm(ctx context.Context, c *client.Client, boardID uuid.UUID) error {
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan struct{}, 1)
	go func() {
		_ = c.Watch(watchCtx, boardID, func(*model.Board) {
			select {
			case ready <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-ready:
	case <-time.After(10 * time.Second):
		return errors.New("timed out waiting for board snapshot")
	case <-ctx.Done():
		return ctx.Err()
	}
	cancel()

	if !c.Replica().Confirmed(boardID) {
		return fmt.Errorf("board %s does not exist", boardID)
	}
	return nil
}

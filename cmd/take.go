package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gioe/quotient/internal/blueprint"
	"github.com/gioe/quotient/internal/irt"
	"github.com/gioe/quotient/internal/itembank"
	"github.com/gioe/quotient/internal/prior"
	"github.com/gioe/quotient/internal/selection"
	"github.com/gioe/quotient/internal/session"
	"github.com/gioe/quotient/internal/stopping"
	"github.com/gioe/quotient/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Run an adaptive test session",
	Long: "Administers an adaptive session: the engine picks each item, the proctor " +
		"enters whether the response was correct, and the final IQ-scaled score is " +
		"recorded to the event log. The session state is snapshotted after every " +
		"response, so an interrupted session can be resumed with --resume.",
	RunE: runTake,
}

func init() {
	takeCmd.Flags().String("examinee", "", "Examinee identifier (required unless resuming)")
	takeCmd.Flags().String("bank", "", "Path to item bank JSON (defaults to items stored in the database, then the demo bank)")
	takeCmd.Flags().Bool("fresh", false, "Ignore prior sessions: default prior and no exposure exclusions")
	takeCmd.Flags().String("resume", "", "Resume an interrupted session by its session ID")
}

func runTake(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	examineeID, _ := cmd.Flags().GetString("examinee")
	fresh, _ := cmd.Flags().GetBool("fresh")
	resumeID, _ := cmd.Flags().GetString("resume")
	if examineeID == "" && resumeID == "" {
		return errors.New("either --examinee or --resume is required")
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	events := st.EventRepo()
	snapshots := st.SnapshotRepo()

	pool, err := resolvePool(ctx, cmd, st, reg)
	if err != nil {
		return err
	}

	engine, err := session.New(reg, cfg.SelectionConfig(), cfg.StoppingConfig(), nil)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	var sess *session.Session
	var sessionID string
	if resumeID != "" {
		sess, err = resumeSession(ctx, snapshots, resumeID)
		if err != nil {
			return err
		}
		sessionID = resumeID
		examineeID = sess.ExamineeID
		fmt.Printf("Resuming session %s for examinee %s at item %d\n",
			sessionID, examineeID, len(sess.Administered)+1)
	} else {
		// Seed the prior from the examinee's history.
		var seedPrior *irt.Prior
		priorSessions := 0
		if !fresh {
			history, err := events.PriorEstimates(ctx, examineeID)
			if err != nil {
				return fmt.Errorf("load prior history: %w", err)
			}
			p, err := prior.Seed(history)
			if err != nil {
				return fmt.Errorf("seed prior: %w", err)
			}
			seedPrior = &p
			priorSessions = len(history)
		}

		sessionID = uuid.NewString()
		sess, err = engine.Initialize(examineeID, sessionID, seedPrior)
		if err != nil {
			return fmt.Errorf("initialize session: %w", err)
		}

		if err := events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  sessionID,
			ExamineeID: examineeID,
			Action:     store.ActionStart,
		}); err != nil {
			return fmt.Errorf("record session start: %w", err)
		}

		fmt.Printf("Session %s for examinee %s (%d items in pool)\n", sessionID, examineeID, len(pool))
		if priorSessions > 0 {
			fmt.Printf("Prior seeded from %d earlier sessions: mean %.2f, sd %.2f\n",
				priorSessions, seedPrior.Mean, seedPrior.SD)
		}
	}

	seenBefore := map[string]bool{}
	if !fresh {
		seenBefore, err = events.ItemsSeen(ctx, examineeID)
		if err != nil {
			return fmt.Errorf("load exposure history: %w", err)
		}
		// Exposure control skips items seen in prior sessions only; this
		// session's own items are excluded by the session state itself.
		for _, id := range sess.Administered {
			delete(seenBefore, id)
		}
	}
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var reason stopping.Reason
	for {
		item, err := engine.NextItem(sess, pool, seenBefore)
		if err != nil {
			if errors.Is(err, selection.ErrNoEligibleItems) {
				reason = stopping.ReasonAllItemsExhausted
				break
			}
			return fmt.Errorf("select item: %w", err)
		}

		correct, err := promptCorrect(reader, sess, item)
		if err != nil {
			return err
		}

		step, err := engine.ProcessResponse(sess, item, correct)
		if err != nil {
			return fmt.Errorf("process response: %w", err)
		}

		if err := events.AppendResponseEvent(ctx, store.ResponseEventData{
			SessionID:      sessionID,
			ExamineeID:     examineeID,
			ItemID:         item.ID(),
			Domain:         item.Domain(),
			Discrimination: item.Discrimination(),
			Difficulty:     item.Difficulty(),
			Correct:        correct,
			ThetaAfter:     step.Theta,
			SEAfter:        step.SE,
		}); err != nil {
			return fmt.Errorf("record response: %w", err)
		}

		if err := saveSnapshot(ctx, snapshots, sess); err != nil {
			return err
		}

		fmt.Printf("  theta %.2f  se %.2f\n", step.Theta, step.SE)
		if step.Decision.ShouldStop {
			reason = step.Decision.Reason
			break
		}
	}

	final, err := engine.Finalize(sess, reason)
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}

	// Keep only the final snapshot once the session is complete.
	if err := saveSnapshot(ctx, snapshots, sess); err != nil {
		return err
	}
	if err := snapshots.Prune(ctx, sessionID, 1); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if err := events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:  sessionID,
		ExamineeID: examineeID,
		Action:     store.ActionEnd,
		ItemsGiven: final.ItemsGiven,
		Correct:    final.CorrectCount,
		Theta:      final.Theta,
		SE:         final.SE,
		Score:      final.Score.Score,
		StopReason: string(final.StopReason),
	}); err != nil {
		return fmt.Errorf("record session end: %w", err)
	}

	printFinal(final)
	return nil
}

// resumeSession restores an interrupted session from its latest snapshot.
func resumeSession(ctx context.Context, snapshots store.SnapshotRepo, sessionID string) (*session.Session, error) {
	snap, err := snapshots.Latest(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("no snapshot found for session %s", sessionID)
	}
	sess, err := session.FromStateMap(snap.Data.State)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if sess.Status == session.StatusComplete {
		return nil, fmt.Errorf("session %s is already complete", sessionID)
	}
	return sess, nil
}

// saveSnapshot persists the current session state so the session survives
// an interruption.
func saveSnapshot(ctx context.Context, snapshots store.SnapshotRepo, sess *session.Session) error {
	state, err := sess.StateMap()
	if err != nil {
		return fmt.Errorf("serialize session: %w", err)
	}
	// One snapshot per response, plus a strictly newer one for the
	// finalized state so pruning keeps only the complete session.
	seq := int64(len(sess.Administered))
	if sess.Status == session.StatusComplete {
		seq++
	}
	err = snapshots.Save(ctx, &store.Snapshot{
		Sequence:  seq,
		Timestamp: time.Now().UTC(),
		SessionID: sess.SessionID,
		Data:      store.SnapshotData{Version: 1, State: state},
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// resolvePool picks the item pool: --bank file, then items persisted in the
// store, then the built-in demo bank.
func resolvePool(ctx context.Context, cmd *cobra.Command, st *store.Store, reg *blueprint.Registry) ([]itembank.Item, error) {
	if path, _ := cmd.Flags().GetString("bank"); path != "" {
		bank, err := itembank.Load(path, reg)
		if err != nil {
			return nil, fmt.Errorf("load bank: %w", err)
		}
		return bank.Pool(), nil
	}

	stored, err := st.ItemRepo().ActivePool(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored items: %w", err)
	}
	if len(stored) > 0 {
		pool := make([]itembank.Item, len(stored))
		for i := range stored {
			pool[i] = stored[i]
		}
		return pool, nil
	}

	return itembank.DemoBank(reg, 10).Pool(), nil
}

func promptCorrect(reader *bufio.Reader, sess *session.Session, item itembank.Item) (bool, error) {
	for {
		fmt.Printf("[%d] item %s (%s, b=%.2f) - correct? [y/n] ",
			len(sess.Administered)+1, item.ID(), item.Domain(), item.Difficulty())
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read response: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Println("  please answer y or n")
	}
}

func printFinal(final session.FinalResult) {
	fmt.Println()
	fmt.Printf("Score:      %d (95%% CI %d-%d)\n", final.Score.Score, final.Score.CILower, final.Score.CIUpper)
	fmt.Printf("Percentile: %.1f\n", final.Score.Percentile)
	fmt.Printf("Ability:    theta %.2f, se %.2f\n", final.Theta, final.SE)
	fmt.Printf("Items:      %d given, %d correct\n", final.ItemsGiven, final.CorrectCount)
	fmt.Printf("Stopped:    %s\n", final.StopReason)

	tags := make([]string, 0, len(final.Domains))
	for tag := range final.Domains {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	fmt.Println("\nDomain breakdown:")
	for _, tag := range tags {
		d := final.Domains[tag]
		fmt.Printf("  %-22s %d/%d", tag, d.Correct, d.Administered)
		if d.Administered > 0 {
			fmt.Printf("  (%.0f%%)", d.Accuracy*100)
		}
		fmt.Println()
	}
}

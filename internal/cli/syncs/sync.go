package syncs

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayplan/internal/cli"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/keyring"
	"github.com/julianstephens/dayplan/internal/remote"
)

func newAdapter(ctx *cli.Context) (*remote.Adapter, error) {
	token, err := keyring.GetSyncToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("no sync token configured, run 'dayplan sync token' first")
		}
		return nil, err
	}
	client := remote.NewClient(ctx.Config.RemoteBaseURL, ctx.Config.RemoteUploadURL, token)
	return remote.NewAdapter(client, ctx.Store, ctx.Settings, ctx.Config.RemoteFolder), nil
}

func report(summary remote.Summary, verb string) error {
	ok := len(summary.Results) - summary.Failed()
	fmt.Printf("%s %d of %d plans\n", verb, ok, len(summary.Results))
	for _, r := range summary.Results {
		if r.Err != nil {
			fmt.Printf("  ✗ %s: %v\n", r.Name, r.Err)
		}
	}
	return summary.Err()
}

type SyncTokenCmd struct {
	Token  string `arg:"" optional:"" help:"Bearer token from the OAuth flow; omit with --delete to remove."`
	Delete bool   `help:"Delete the stored token."`
}

func (c *SyncTokenCmd) Run(ctx *cli.Context) error {
	if c.Delete {
		if err := keyring.DeleteSyncToken(); err != nil {
			return err
		}
		fmt.Println("✓ Sync token removed")
		return nil
	}
	if c.Token == "" {
		return fmt.Errorf("token argument required (or pass --delete)")
	}
	if err := keyring.SetSyncToken(c.Token); err != nil {
		return err
	}
	fmt.Println("✓ Sync token stored in OS keyring")
	return nil
}

type SyncPushCmd struct{}

func (c *SyncPushCmd) Run(ctx *cli.Context) error {
	adapter, err := newAdapter(ctx)
	if err != nil {
		return err
	}
	summary, _ := adapter.Push(context.Background())
	return report(summary, "Uploaded")
}

type SyncPullCmd struct {
	Yes bool `short:"y" help:"Skip the overwrite confirmation."`
}

func (c *SyncPullCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Pull remote plans?").
				Description("Remote copies overwrite local plans for the same dates.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Pull cancelled.")
			return nil
		}
	}

	adapter, err := newAdapter(ctx)
	if err != nil {
		return err
	}
	summary, _ := adapter.Pull(context.Background())
	return report(summary, "Downloaded")
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *cli.Context) error {
	last, err := ctx.Settings.Get(constants.SettingLastSync)
	if err != nil {
		return err
	}
	if last == "" {
		fmt.Println("Never synced.")
		return nil
	}
	fmt.Printf("Last successful sync: %s\n", last)

	if _, err := keyring.GetSyncToken(); errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No sync token configured.")
	}
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bannerforge/bannerforge/pkg/banner"
	"github.com/bannerforge/bannerforge/pkg/errors"
	"github.com/bannerforge/bannerforge/pkg/store"
)

// newBannersCmd creates the banners command group for the saved-scene store.
func newBannersCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners",
		Short: "Manage saved banner scenes",
	}

	cmd.AddCommand(newBannersListCmd(flags))
	cmd.AddCommand(newBannersSaveCmd(flags))
	cmd.AddCommand(newBannersShowCmd(flags))
	cmd.AddCommand(newBannersDeleteCmd(flags))

	return cmd
}

// withStore loads config, opens the store backend, and runs fn.
func withStore(ctx context.Context, flags *rootFlags, fn func(st store.Store) error) error {
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg, loggerFromContext(ctx))
	if err != nil {
		return err
	}
	defer st.Close(ctx)
	return fn(st)
}

func newBannersListCmd(flags *rootFlags) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved banners",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), flags, func(st store.Store) error {
				recs, err := st.List(cmd.Context(), owner)
				if err != nil {
					return err
				}
				if len(recs) == 0 {
					printInfo("No saved banners")
					return nil
				}
				fmt.Println(StyleTitle.Render("Saved banners"))
				for _, rec := range recs {
					desc := fmt.Sprintf("%dx%d", rec.Scene.Canvas.Width, rec.Scene.Canvas.Height)
					if rec.Name != "" {
						desc = StyleHighlight.Render(rec.Name) + " · " + desc
					}
					if rec.Scene.HasText() {
						desc += " · " + StyleDim.Render(fmt.Sprintf("%q", rec.Scene.Text.Content))
					}
					desc += " · " + StyleDim.Render(rec.UpdatedAt.Format("2006-01-02 15:04"))
					printKeyValue(rec.ID, desc)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "filter by owner id")
	return cmd
}

func newBannersSaveCmd(flags *rootFlags) *cobra.Command {
	var name, owner string
	cmd := &cobra.Command{
		Use:   "save <scene.json>",
		Short: "Save a scene file as a banner record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene file")
			}
			var scene banner.Scene
			if err := json.Unmarshal(data, &scene); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse scene file")
			}
			return withStore(cmd.Context(), flags, func(st store.Store) error {
				rec := store.NewRecord(owner, scene)
				rec.Name = name
				if err := st.Create(cmd.Context(), rec); err != nil {
					return err
				}
				printSuccess("Saved banner %s", rec.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&owner, "owner", "", "owner id")
	return cmd
}

func newBannersShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved banner as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), flags, func(st store.Store) error {
				rec, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "marshal banner")
				}
				fmt.Println(string(out))
				return nil
			})
		},
	}
}

func newBannersDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), flags, func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted banner %s", args[0])
				return nil
			})
		},
	}
}

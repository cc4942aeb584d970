package bot

import (
	"errors"

	"github.com/ArnaudCalmettes/fsiv/models"
	"github.com/Necroforger/dgrouter/exrouter"
	"github.com/jinzhu/gorm"
)

var errNotInGuild = errors.New("scans can only be recorded on a server")

// createGuild registers the guild of the message. Failures are reported to
// the user before being returned.
func createGuild(ctx *exrouter.Context) error {
	if ctx.Msg.GuildID == "" {
		return sendError(ctx, errNotInGuild)
	}
	guild, err := ctx.Guild(ctx.Msg.GuildID)
	if err != nil {
		return internalError(ctx, err)
	}

	return transaction(ctx, func(tx *gorm.DB) error {
		created, err := models.EnsureGuild(tx, guild.ID, guild.Name)
		if err != nil {
			return internalError(ctx, err)
		}
		if created {
			sendInfo(ctx, "Scans posted on **", guild.Name, "** will now be recorded.")
		}
		return nil
	})
}

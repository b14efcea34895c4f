package slack_test

import (
	"errors"
	"testing"

	slacklib "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publicworks/portal/internal/notify"
	slacksink "github.com/publicworks/portal/internal/notify/slack"
	"github.com/publicworks/portal/internal/result"
)

type fakeSlackAPI struct {
	channelID string
	calls     int
	err       error
}

func (f *fakeSlackAPI) PostMessage(channelID string, _ ...slacklib.MsgOption) (string, string, error) {
	f.channelID = channelID
	f.calls++
	return channelID, "1700000000.000100", f.err
}

func notice() notify.Notice {
	return notify.Notice{
		TenantID: "acme",
		Entity:   "work_order",
		EntityID: "wo-1",
		Banner:   result.NewBanner(result.BannerSuccess, "Work order created", "Replace hydrant"),
	}
}

func TestSink(t *testing.T) {
	t.Parallel()

	t.Run("posts to the configured channel", func(t *testing.T) {
		t.Parallel()

		api := &fakeSlackAPI{}
		sink := slacksink.New(api, "C-OPS")

		err := sink.Publish(t.Context(), notice())

		require.NoError(t, err)
		assert.Equal(t, "C-OPS", api.channelID)
		assert.Equal(t, 1, api.calls)
	})

	t.Run("api errors are wrapped", func(t *testing.T) {
		t.Parallel()

		down := errors.New("slack down")
		sink := slacksink.New(&fakeSlackAPI{err: down}, "C-OPS")

		err := sink.Publish(t.Context(), notice())

		assert.ErrorIs(t, err, down)
	})
}

func TestFormatNotice(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"[success] Work order created: Replace hydrant (tenant acme)",
		slacksink.FormatNotice(notice()),
	)

	untitled := notice()
	untitled.Banner.Title = ""
	assert.Equal(t,
		"[success] Replace hydrant (tenant acme)",
		slacksink.FormatNotice(untitled),
	)
}

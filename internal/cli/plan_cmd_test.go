package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dayplanner/internal/config"
	"dayplanner/internal/model"
	"dayplanner/internal/service"
	"dayplanner/pkg/logx"
)

func testApp(terminal bool) *App {
	return &App{
		Log:        logx.Nop(),
		IsTerminal: func() bool { return terminal },
	}
}

func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlanCmd_Args(t *testing.T) {
	out, err := execute(t, testApp(false), "", "plan", "Team meeting", "Prepare report")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out, "Your Day at a Glance:\n11AM: Team meeting\n12PM: Prepare report\n"), out)
	assert.True(t, strings.HasPrefix(out, "We've analyzed your tasks"))
}

func TestPlanCmd_Stdin(t *testing.T) {
	out, err := execute(t, testApp(false), "Go for a run\n\n  Pick up kid \n", "plan", "--plain")
	require.NoError(t, err)

	assert.Contains(t, out, "1PM: Go for a run\n4PM: Pick up kid\n")
}

func TestPlanCmd_JSON(t *testing.T) {
	out, err := execute(t, testApp(true), "", "plan", "--json", "Prepare slides", "Read a book")
	require.NoError(t, err)

	var res model.ScheduleResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []model.TimeBlock{
		{Time: "11AM", Task: "Prepare slides"},
		{Time: "3PM", Task: "Read a book"},
	}, res.TimeBlocks)
	assert.Contains(t, out, `"visualization"`)
}

func TestPlanCmd_Styled(t *testing.T) {
	out, err := execute(t, testApp(true), "", "plan", "Mow the lawn")
	require.NoError(t, err)

	assert.Contains(t, out, "Your Optimized Schedule")
	assert.Contains(t, out, "Mow the lawn")
}

func TestPlanCmd_Empty(t *testing.T) {
	_, err := execute(t, testApp(false), "\n \n", "plan")

	assert.ErrorIs(t, err, service.ErrEmptyPlan)
}

func TestBotCmd_RequiresToken(t *testing.T) {
	app := testApp(false)
	app.Config = config.Config{}

	_, err := execute(t, app, "", "bot")

	assert.ErrorContains(t, err, "TELEGRAM_TOKEN")
}

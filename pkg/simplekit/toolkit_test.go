package simplekit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stlalpha/simplekit/pkg/simplekit"
	"github.com/stlalpha/simplekit/pkg/simplekit/mock"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func quietToolkit(tk *simplekit.Toolkit) *logtest.Hook {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	tk.SetLogger(logger)
	return hook
}

func emitter(typ simplekit.SKEventType) simplekit.Translator {
	return simplekit.TranslatorFunc(func(fe simplekit.FundamentalEvent) (simplekit.SKEvent, bool) {
		return simplekit.SKEvent{Type: typ, TimeStamp: fe.TimeStamp}, true
	})
}

func TestRunLoopSynthesizesNullEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockTranslator(ctrl)
	second := mock.NewMockTranslator(ctrl)

	tk := simplekit.NewEmpty()
	quietToolkit(tk)
	tk.AddTranslator(first)
	tk.AddTranslator(second)

	null := simplekit.NullEvent(ms(16))
	gomock.InOrder(
		first.EXPECT().Update(null).Return(simplekit.SKEvent{}, false),
		second.EXPECT().Update(null).Return(simplekit.SKEvent{}, false),
	)

	tk.RunLoop(&simplekit.Queue{}, ms(16))

	stats := tk.Stats()
	assert.Equal(t, uint64(1), stats.Frames)
	assert.Equal(t, uint64(1), stats.NullFrames)
	assert.Equal(t, uint64(2), stats.Calls)
}

func TestRunLoopCoalescesBeforeTranslating(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mock.NewMockTranslator(ctrl)

	tk := simplekit.NewEmpty()
	quietToolkit(tk)
	tk.AddTranslator(tr)

	last := simplekit.FundamentalEvent{Type: simplekit.EventMouseMove, TimeStamp: ms(3), X: 3}
	key := simplekit.FundamentalEvent{Type: simplekit.EventKeyDown, TimeStamp: ms(4), Key: "a"}
	q := simplekit.Queue{
		{Type: simplekit.EventMouseMove, TimeStamp: ms(1), X: 1},
		{Type: simplekit.EventMouseMove, TimeStamp: ms(2), X: 2},
		last,
		key,
	}

	gomock.InOrder(
		tr.EXPECT().Update(last).Return(simplekit.SKEvent{}, false),
		tr.EXPECT().Update(key).Return(simplekit.SKEvent{}, false),
	)

	tk.RunLoop(&q, ms(5))

	assert.Zero(t, q.Len(), "queue is drained")
	stats := tk.Stats()
	assert.Equal(t, uint64(4), stats.RawEvents)
	assert.Equal(t, uint64(2), stats.Events)
	assert.Equal(t, uint64(2), stats.Coalesced())
	assert.Equal(t, uint64(0), stats.NullFrames)
}

func TestRunLoopDispatchOrder(t *testing.T) {
	tk := simplekit.NewEmpty()
	quietToolkit(tk)
	tk.AddTranslator(emitter("a"))
	tk.AddTranslator(emitter("b"))

	var got []string
	tk.SetEventListener(func(ev simplekit.SKEvent) {
		got = append(got, string(ev.Type)+ev.TimeStamp.String())
	})

	q := simplekit.Queue{
		{Type: simplekit.EventKeyDown, TimeStamp: ms(1), Key: "x"},
		{Type: simplekit.EventKeyUp, TimeStamp: ms(2), Key: "x"},
	}
	tk.RunLoop(&q, ms(3))

	assert.Equal(t, []string{"a1ms", "b1ms", "a2ms", "b2ms"}, got)
	assert.Equal(t, uint64(4), tk.Stats().Emitted)
}

func TestRunLoopCallbackOrder(t *testing.T) {
	sys := simplekit.NewScriptedSystem(20, 5)
	tk := simplekit.NewEmpty()
	quietToolkit(tk)
	tk.AddTranslator(emitter("tick"))

	var calls []string
	tk.SetEventListener(func(ev simplekit.SKEvent) { calls = append(calls, "listener") })
	tk.SetAnimationCallback(func(now time.Duration) {
		assert.Equal(t, ms(40), now)
		calls = append(calls, "animate")
	})
	tk.SetDrawCallback(func(gc simplekit.Canvas) {
		assert.Same(t, tk.Surface(), gc)
		calls = append(calls, "draw")
	})

	require.True(t, tk.Start(sys))
	require.NoError(t, sys.Frame(ms(40)))

	assert.Equal(t, []string{"listener", "animate", "draw"}, calls)
}

func TestRunLoopWithoutCallbacks(t *testing.T) {
	tk := simplekit.New(simplekit.DefaultOptions())
	quietToolkit(tk)

	assert.NotPanics(t, func() {
		tk.RunLoop(nil, 0)
		tk.RunLoop(&simplekit.Queue{{Type: simplekit.EventMouseDown, Button: simplekit.ButtonLeft}}, ms(1))
	})
	assert.Equal(t, uint64(2), tk.Stats().Frames)
}

func TestAddTranslatorIsNotRetroactive(t *testing.T) {
	tk := simplekit.NewEmpty()
	quietToolkit(tk)

	late := 0
	added := false
	tk.AddTranslator(simplekit.TranslatorFunc(func(fe simplekit.FundamentalEvent) (simplekit.SKEvent, bool) {
		if !added {
			added = true
			tk.AddTranslator(simplekit.TranslatorFunc(func(simplekit.FundamentalEvent) (simplekit.SKEvent, bool) {
				late++
				return simplekit.SKEvent{}, false
			}))
		}
		return simplekit.SKEvent{}, false
	}))

	q := simplekit.Queue{
		{Type: simplekit.EventKeyDown, TimeStamp: ms(1), Key: "a"},
		{Type: simplekit.EventKeyDown, TimeStamp: ms(2), Key: "b"},
	}
	tk.RunLoop(&q, ms(3))

	assert.Equal(t, 1, late, "new translator only sees the second event")
	assert.Len(t, tk.Translators(), 2)
}

func TestAddTranslatorLogsCount(t *testing.T) {
	tk := simplekit.New(simplekit.DefaultOptions())
	hook := quietToolkit(tk)

	tk.AddTranslator(emitter("custom"))
	tk.AddTranslator(nil)

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "added event translator, now 6 translators", hook.LastEntry().Message)
	assert.Len(t, tk.Translators(), 6)
}

func TestRunLoopReentryIgnored(t *testing.T) {
	tk := simplekit.NewEmpty()
	hook := quietToolkit(tk)
	tk.AddTranslator(emitter("x"))

	inner := 0
	tk.SetEventListener(func(simplekit.SKEvent) {
		inner++
		tk.RunLoop(nil, ms(99))
	})
	tk.RunLoop(nil, ms(1))

	assert.Equal(t, 1, inner)
	assert.Equal(t, uint64(1), tk.Stats().Frames)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestStartupEnvironmentFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mock.NewMockWindowingSystem(ctrl)
	ws.EXPECT().Validate().Return(errors.New("not a terminal"))

	tk := simplekit.New(simplekit.DefaultOptions())
	hook := quietToolkit(tk)

	assert.False(t, tk.Start(ws))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "SimpleKit startup failed", hook.LastEntry().Message)
	assert.Nil(t, tk.Surface())
}

func TestStartupSurfaceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mock.NewMockWindowingSystem(ctrl)
	gomock.InOrder(
		ws.EXPECT().Validate().Return(nil),
		ws.EXPECT().Surface().Return(nil, errors.New("no canvas")),
	)

	tk := simplekit.New(simplekit.DefaultOptions())
	quietToolkit(tk)

	err := tk.Startup(ws)
	assert.ErrorIs(t, err, simplekit.ErrNoSurface)
	assert.NotErrorIs(t, err, simplekit.ErrEnvironment)
}

func TestStartupNilSurface(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mock.NewMockWindowingSystem(ctrl)
	ws.EXPECT().Validate().Return(nil)
	ws.EXPECT().Surface().Return(nil, nil)

	tk := simplekit.NewEmpty()
	quietToolkit(tk)

	assert.ErrorIs(t, tk.Startup(ws), simplekit.ErrNoSurface)
}

func TestStartupAttachesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := mock.NewMockWindowingSystem(ctrl)
	gomock.InOrder(
		ws.EXPECT().Validate().Return(nil),
		ws.EXPECT().Surface().Return(simplekit.NewMemoryCanvas(4, 4), nil),
		ws.EXPECT().Attach(gomock.Any()).Times(1),
	)

	tk := simplekit.NewEmpty()
	quietToolkit(tk)

	require.NoError(t, tk.Startup(ws))
	assert.ErrorIs(t, tk.Startup(ws), simplekit.ErrAlreadyStarted)
	assert.NotNil(t, tk.Surface())
}

func TestStartupNilSystem(t *testing.T) {
	tk := simplekit.NewEmpty()
	quietToolkit(tk)
	assert.ErrorIs(t, tk.Startup(nil), simplekit.ErrEnvironment)
}

func runDefault(t *testing.T, opts simplekit.Options) (*simplekit.ScriptedSystem, *simplekit.Toolkit, *[]simplekit.SKEvent) {
	t.Helper()
	sys := simplekit.NewScriptedSystem(80, 24)
	tk := simplekit.New(opts)
	quietToolkit(tk)

	var got []simplekit.SKEvent
	tk.SetEventListener(func(ev simplekit.SKEvent) { got = append(got, ev) })
	require.True(t, tk.Start(sys))
	return sys, tk, &got
}

func kinds(events []simplekit.SKEvent) []simplekit.SKEventType {
	out := make([]simplekit.SKEventType, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Type)
	}
	return out
}

func mouse(typ simplekit.FundamentalType, at int, x, y float64) simplekit.FundamentalEvent {
	return simplekit.FundamentalEvent{Type: typ, TimeStamp: ms(at), X: x, Y: y, Button: simplekit.ButtonLeft}
}

func TestDefaultPipelineDoubleClick(t *testing.T) {
	sys, _, got := runDefault(t, simplekit.DefaultOptions())

	sys.Post(
		mouse(simplekit.EventMouseDown, 0, 5, 5),
		mouse(simplekit.EventMouseUp, 50, 5, 5),
		mouse(simplekit.EventMouseDown, 120, 5, 5),
		mouse(simplekit.EventMouseUp, 170, 5, 5),
	)
	require.NoError(t, sys.Frame(ms(180)))
	require.NoError(t, sys.Frame(ms(800)))

	assert.Equal(t, []simplekit.SKEventType{
		simplekit.SKMouseDown, simplekit.SKMouseUp,
		simplekit.SKMouseDown, simplekit.SKMouseUp,
		simplekit.SKDblClick,
	}, kinds(*got))
}

func TestDefaultPipelineSingleClick(t *testing.T) {
	sys, _, got := runDefault(t, simplekit.DefaultOptions())

	sys.Post(mouse(simplekit.EventMouseDown, 0, 5, 5), mouse(simplekit.EventMouseUp, 50, 5, 5))
	require.NoError(t, sys.Frame(ms(60)))
	assert.Equal(t, []simplekit.SKEventType{simplekit.SKMouseDown, simplekit.SKMouseUp}, kinds(*got))

	*got = nil
	require.NoError(t, sys.Frame(ms(200)))
	assert.Empty(t, *got)

	require.NoError(t, sys.Frame(ms(400)))
	require.Equal(t, []simplekit.SKEventType{simplekit.SKClick}, kinds(*got))
	assert.Equal(t, ms(50), (*got)[0].TimeStamp)
}

func TestDefaultPipelineKeysAndDrag(t *testing.T) {
	sys, _, got := runDefault(t, simplekit.DefaultOptions())

	sys.Post(
		simplekit.FundamentalEvent{Type: simplekit.EventKeyDown, TimeStamp: ms(1), Key: "q"},
		simplekit.FundamentalEvent{Type: simplekit.EventKeyDown, TimeStamp: ms(2), Key: "q"},
		mouse(simplekit.EventMouseDown, 10, 0, 0),
		mouse(simplekit.EventMouseMove, 20, 30, 0),
		mouse(simplekit.EventMouseUp, 30, 30, 0),
	)
	require.NoError(t, sys.Frame(ms(40)))

	assert.Equal(t, []simplekit.SKEventType{
		simplekit.SKKeyDown, simplekit.SKKeyPress,
		simplekit.SKKeyDown,
		simplekit.SKMouseDown,
		simplekit.SKMouseMove, simplekit.SKDragStart,
		simplekit.SKMouseUp, simplekit.SKDragEnd,
	}, kinds(*got))
}

func TestConfigureChangesTolerance(t *testing.T) {
	sys, tk, got := runDefault(t, simplekit.DefaultOptions())

	click := func(at int) {
		sys.Post(mouse(simplekit.EventMouseDown, at, 0, 0), mouse(simplekit.EventMouseUp, at+50, 8, 0))
		require.NoError(t, sys.Frame(ms(at+60)))
		require.NoError(t, sys.Frame(ms(at+1000)))
	}

	opts := simplekit.DefaultOptions()
	opts.ClickTolerance = 5
	tk.Configure(opts)
	click(0)
	assert.NotContains(t, kinds(*got), simplekit.SKClick)

	tk.Configure(simplekit.DefaultOptions())
	click(2000)
	assert.Contains(t, kinds(*got), simplekit.SKClick)
}

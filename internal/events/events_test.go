package events

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringclock/pkg/logger"
)

type failingBus struct{ err error }

func (f failingBus) Emit(context.Context, Event) error { return f.err }

func TestMulti(t *testing.T) {
	Convey("Multi delivers to every bus", t, func() {
		a, b := &Recorder{}, &Recorder{}
		m := Multi{a, b}

		So(m.Emit(context.Background(), New(PatternDisable)), ShouldBeNil)
		So(a.Kinds(), ShouldResemble, []Kind{PatternDisable})
		So(b.Kinds(), ShouldResemble, []Kind{PatternDisable})

		Convey("and keeps going past a failing bus", func() {
			boom := errors.New("broker down")
			c := &Recorder{}
			err := Multi{failingBus{boom}, c}.Emit(context.Background(), New(PatternEnable))

			So(errors.Is(err, boom), ShouldBeTrue)
			So(c.Kinds(), ShouldResemble, []Kind{PatternEnable})
		})
	})
}

func TestLogBus(t *testing.T) {
	Convey("LogBus logs the kind and message", t, func() {
		var buf bytes.Buffer
		So(logger.InitWriter(&buf), ShouldBeNil)

		bus := NewLogBus(logger.Named("events"))
		e := New(SyncFailed)
		e.Message = "Status: 503"
		So(bus.Emit(context.Background(), e), ShouldBeNil)

		So(buf.String(), ShouldContainSubstring, "kind=sync_failed")
		So(buf.String(), ShouldContainSubstring, `message="Status: 503"`)
	})
}

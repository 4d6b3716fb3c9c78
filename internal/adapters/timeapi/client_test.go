package timeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/ringclock/internal/timesync"
)

const payload = `{
  "year": 2024, "month": 3, "day": 15, "hour": 10, "minute": 15,
  "seconds": 30, "milliSeconds": 250, "dateTime": "2024-03-15T10:15:30.25",
  "date": "03/15/2024", "time": "10:15", "timeZone": "Europe/London",
  "dayOfWeek": "Friday", "dstActive": false
}`

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetch(t *testing.T) {
	ctx := context.Background()

	Convey("A 200 response is decoded into a DateTime", t, func() {
		srv := serve(http.StatusOK, payload)
		defer srv.Close()

		dt, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(err, ShouldBeNil)
		So(dt.Tuple(), ShouldResemble, [8]int{2024, 3, 15, 4, 10, 15, 30, 250})
	})

	Convey("A numeric day of week is passed through", t, func() {
		srv := serve(http.StatusOK, `{"year":2024,"month":3,"day":15,"dayOfWeek":5,"hour":1,"minute":2,"seconds":3,"milliSeconds":4}`)
		defer srv.Close()

		dt, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(err, ShouldBeNil)
		So(dt.DayOfWeek, ShouldEqual, 5)
	})

	Convey("A non-200 status becomes a StatusError", t, func() {
		srv := serve(http.StatusServiceUnavailable, `{"error":"busy"}`)
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(errors.Is(err, timesync.ErrStatus), ShouldBeTrue)

		var se *timesync.StatusError
		So(errors.As(err, &se), ShouldBeTrue)
		So(se.Code, ShouldEqual, 503)
		So(err.Error(), ShouldEqual, `Status: 503, Message: {"error":"busy"}`)
	})

	Convey("A payload missing a field is malformed", t, func() {
		srv := serve(http.StatusOK, `{"year":2024,"month":3,"day":15,"dayOfWeek":"Friday","hour":10,"minute":15,"seconds":30}`)
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(errors.Is(err, timesync.ErrMalformed), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "milliSeconds")
	})

	Convey("Invalid JSON is malformed", t, func() {
		srv := serve(http.StatusOK, `<html>`)
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(errors.Is(err, timesync.ErrMalformed), ShouldBeTrue)
	})

	Convey("An unknown day name is malformed", t, func() {
		srv := serve(http.StatusOK, `{"year":2024,"month":3,"day":15,"dayOfWeek":"Caturday","hour":1,"minute":2,"seconds":3,"milliSeconds":4}`)
		defer srv.Close()

		_, err := New(WithURL(srv.URL)).Fetch(ctx)
		So(errors.Is(err, timesync.ErrMalformed), ShouldBeTrue)
	})

	Convey("A deadline that expires is a transport error", t, func() {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-block:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(block)

		tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := New(WithURL(srv.URL)).Fetch(tctx)
		So(errors.Is(err, timesync.ErrTransport), ShouldBeTrue)
	})

	Convey("An unreachable host is a transport error", t, func() {
		srv := serve(http.StatusOK, payload)
		url := srv.URL
		srv.Close()

		_, err := New(WithURL(url)).Fetch(ctx)
		So(errors.Is(err, timesync.ErrTransport), ShouldBeTrue)
	})
}

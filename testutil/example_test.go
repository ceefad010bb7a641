package testutil_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/broady/apikit"
	"github.com/broady/apikit/testutil"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Shows the intended shape of an endpoint test: configure the transport
// double, run the call, assert on what was sent.
func TestTransportWithEndpoint(t *testing.T) {
	tr := testutil.NewTransport().RespondJSON(http.StatusOK, widget{ID: 1, Name: "gear"})
	c := apikit.NewBaseWith(tr.Client())

	get := apikit.MustEndpoint[apikit.Empty, widget]("GET", "https://example.com/widgets/{id}", apikit.BodyNone, apikit.ResultJSON)
	got, err := get.Call(context.Background(), c, apikit.Empty{}, apikit.Params{"id": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "gear" {
		t.Errorf("unexpected widget: %+v", got)
	}
	if tr.Count() != 1 {
		t.Errorf("expected one request, saw %d", tr.Count())
	}
	if path := tr.LastRequest().URL.Path; path != "/widgets/1" {
		t.Errorf("unexpected path %q", path)
	}
}

func TestTransportRecordsBodies(t *testing.T) {
	tr := testutil.NewTransport()
	c := apikit.NewBaseWith(tr.Client())

	create := apikit.MustEndpoint[widget, int]("POST", "https://example.com/widgets", apikit.BodyJSON, apikit.ResultStatus)
	if _, err := create.Call(context.Background(), c, widget{ID: 2, Name: "cog"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertJSONBody(t, tr.Body(0), widget{ID: 2, Name: "cog"})
	testutil.AssertHeader(t, tr.Request(0), "Content-Type", "application/json")
}

func TestTransportEcho(t *testing.T) {
	tr := testutil.NewTransport().RespondWith(testutil.Echo())
	c := apikit.NewBaseWith(tr.Client())

	echo := apikit.MustEndpoint[widget, widget]("POST", "https://example.com/echo", apikit.BodyJSON, apikit.ResultJSON)
	got, err := echo.Call(context.Background(), c, widget{ID: 3, Name: "sprocket"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (widget{ID: 3, Name: "sprocket"}) {
		t.Errorf("echo mismatch: %+v", got)
	}
}

func TestTransportFail(t *testing.T) {
	tr := testutil.NewTransport().Fail(errTest)
	c := apikit.NewBaseWith(tr.Client())

	ping := apikit.MustEndpoint[apikit.Empty, int]("GET", "https://example.com/ping", apikit.BodyNone, apikit.ResultStatus)
	if _, err := ping.Call(context.Background(), c, apikit.Empty{}, nil); err == nil {
		t.Fatal("expected error")
	}
	if !tr.Sent() {
		t.Error("request should have reached the transport")
	}
}

var errTest = errors.New("dial refused")

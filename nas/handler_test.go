package nas_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dwc-revival/nasd/nas"
	"github.com/dwc-revival/nasd/nas/codec"
	"github.com/dwc-revival/nasd/nas/handshake"
	"github.com/dwc-revival/nasd/nas/transcript"
	tu "github.com/dwc-revival/nasd/std/utils/testutils"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type handlerEnv struct {
	handler *nas.Handler
	metrics *nas.Metrics
	output  string
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	output := filepath.Join(t.TempDir(), "output.txt")
	builder := &handshake.Builder{
		Now:       func() time.Time { return time.Date(2014, 5, 3, 7, 8, 9, 0, time.UTC) },
		Challenge: func() string { return "Ab3dEf7h" },
	}
	metrics := nas.NewMetrics()
	tl := transcript.NewLogger(transcript.NewFileSink(output))
	return &handlerEnv{
		handler: nas.NewHandler(builder, tl, metrics, "wifiappw3"),
		metrics: metrics,
		output:  output,
	}
}

func (e *handlerEnv) do(method, target, body string) *http.Response {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec.Result()
}

func readBody(t *testing.T, res *http.Response) string {
	defer res.Body.Close()
	return string(tu.NoErr(io.ReadAll(res.Body)))
}

func TestLoginPost(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	post := handshake.EncodeFields("action", "login", "gsbrcd", "ABCD", "userid", "bob")
	res := env.do(http.MethodPost, "/ac", post.Encode())
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "wifiappw3", res.Header.Get("NODE"))
	require.Equal(t, "Nintendo Wii (http)", res.Header.Get("Server"))
	require.Equal(t, "text/plain", res.Header.Get("Content-Type"))

	body := readBody(t, res)
	require.Len(t, strings.Split(body, "&"), 6)
	require.True(t, strings.HasPrefix(body, "challenge="+codec.EncodeString("Ab3dEf7h")+"&locator="))

	d := tu.NoErr(handshake.DecodeResponse(body))
	require.Equal(t, `gsbrcd\ABCD|userid\bob|challenge\Ab3dEf7h`, d.AuthKey)
	require.Equal(t, "20140503070809", d.Get("datetime"))

	require.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Logins))
	require.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Requests.WithLabelValues("ac")))
}

func TestLoginGetAndPost(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	post := handshake.EncodeFields("userid", "bob")
	get := handshake.EncodeFields("ingamesn", "Red", "lang", "01")
	res := env.do(http.MethodPost, "/ac?"+get.Encode(), post.Encode())

	d := tu.NoErr(handshake.DecodeResponse(readBody(t, res)))
	require.Equal(t, `userid\bob|ingamesn\Red|challenge\Ab3dEf7h`, d.AuthKey)

	data := tu.NoErr(os.ReadFile(env.output))
	require.Equal(t, transcript.Render(post, get), string(data))
}

func TestLoginGetOnly(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	get := handshake.EncodeFields("devname", "DS", "passwd", "pw")
	res := env.do(http.MethodGet, "/ac?"+get.Encode(), "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	d := tu.NoErr(handshake.DecodeResponse(readBody(t, res)))
	require.Equal(t, `devname\DS|passwd\pw|challenge\Ab3dEf7h`, d.AuthKey)
}

func TestLoginEmptyAndMalformed(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	res := env.do(http.MethodPost, "/ac", "")
	d := tu.NoErr(handshake.DecodeResponse(readBody(t, res)))
	require.Equal(t, `challenge\Ab3dEf7h`, d.AuthKey)

	res = env.do(http.MethodPost, "/ac", "userid=%zz&gsbrcd=!!!!&devname=RFM*")
	require.Equal(t, http.StatusOK, res.StatusCode)
	d = tu.NoErr(handshake.DecodeResponse(readBody(t, res)))
	require.Equal(t, `gsbrcd\|devname\DS|challenge\Ab3dEf7h`, d.AuthKey)
}

func TestLoginTranscriptFailure(t *testing.T) {
	tu.SetT(t)

	builder := &handshake.Builder{}
	metrics := nas.NewMetrics()
	tl := transcript.NewLogger(transcript.NewFileSink(filepath.Join(t.TempDir(), "none", "out.txt")))
	h := nas.NewHandler(builder, tl, metrics, "wifiappw3")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ac", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, strings.Split(rec.Body.String(), "&"), 6)
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.TranscriptErrors))
}

func TestDefaultNode(t *testing.T) {
	tu.SetT(t)

	h := nas.NewHandler(&handshake.Builder{}, transcript.NewLogger(&memorySink{}), nil, "")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ac", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, nas.DefaultNode, rec.Header().Get("NODE"))
	require.Equal(t, "wifiappw3", nas.DefaultNode)
}

func TestWordFilter(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	post := handshake.EncodeFields("words", "one\ttwo")
	res := env.do(http.MethodPost, "/pr", post.Encode())
	require.Equal(t, http.StatusOK, res.StatusCode)

	d := tu.NoErr(handshake.DecodeResponse(readBody(t, res)))
	require.Len(t, d.Fields, 9)
	require.Equal(t, "00", d.Get("prwords"))
	require.Equal(t, "00", d.Get("prwordsJ"))
	require.Equal(t, "000", d.Get("returncd"))
	require.Empty(t, d.AuthKey)
}

func TestConnTest(t *testing.T) {
	tu.SetT(t)
	env := newHandlerEnv(t)

	res := env.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "Nintendo", res.Header.Get("X-Organization"))
	require.Equal(t, "ok", readBody(t, res))

	res = env.do(http.MethodPost, "/unknown", "a=b")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestForwardedFor(t *testing.T) {
	tu.SetT(t)

	sink := &memorySink{}
	h := nas.NewHandler(&handshake.Builder{}, transcript.NewLogger(sink), nil, "n")

	req := httptest.NewRequest(http.MethodGet, "/ac", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/ac", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, sink.recs, 2)
	require.Equal(t, "203.0.113.9", sink.recs[0].Remote)
	require.Equal(t, "198.51.100.4", sink.recs[1].Remote)
	require.Equal(t, "/ac", sink.recs[1].Path)
}

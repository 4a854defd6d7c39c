package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// Stream message types.
const (
	MessageMatch  = "match"
	MessageNotice = "notice"
	MessageDone   = "done"
)

const streamWriteWait = 10 * time.Second

// StreamMessage is one frame of the search stream.
type StreamMessage struct {
	Type    string               `json:"type"`
	Match   *biblia.SearchResult `json:"match,omitempty"`
	Notice  *biblia.Notice       `json:"notice,omitempty"`
	Summary *StreamSummary       `json:"summary,omitempty"`
}

// StreamSummary closes a search stream.
type StreamSummary struct {
	Matches   int  `json:"matches"`
	Calls     int  `json:"calls"`
	Truncated bool `json:"truncated"`
}

// streamWriter serialises frames onto a WebSocket. After the first failed
// write it cancels the search and drops further frames.
type streamWriter struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	err    error
}

func (sw *streamWriter) send(msg StreamMessage) {
	if sw.err != nil {
		return
	}
	b, err := json.Marshal(msg)
	if err == nil {
		_ = sw.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		err = sw.conn.WriteMessage(websocket.TextMessage, b)
	}
	if err != nil {
		sw.err = err
		sw.cancel()
	}
}

func (s *Server) handleSearchStream(w http.ResponseWriter, r *http.Request) {
	book, err := s.lookupBook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	word := r.URL.Query().Get("q")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originAllowed,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger().Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reading is the only way to notice the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sw := &streamWriter{conn: conn, cancel: cancel}
	notices := biblia.ReporterFunc(func(n biblia.Notice) {
		sw.send(StreamMessage{Type: MessageNotice, Notice: &n})
	})

	sum := s.Walker.Walk(ctx, book.Name, word, notices, func(res biblia.SearchResult) {
		sw.send(StreamMessage{Type: MessageMatch, Match: &res})
	})

	sw.send(StreamMessage{Type: MessageDone, Summary: &StreamSummary{
		Matches:   sum.Matches,
		Calls:     sum.Calls,
		Truncated: sum.Truncated,
	}})
	if sw.err != nil {
		s.logger().Debug("search stream aborted", "book", book.Name, "err", sw.err)
		return
	}

	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

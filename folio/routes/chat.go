package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"folio/folio/controllers"
	"folio/folio/utils/logging"
	"folio/folio/utils/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Backend failures are logged server-side and answered with this fixed
// payload; the root cause is never echoed to the client.
const genericChatError = "assistant is unavailable right now"

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()

	// POST /api/chat : one transcript in, one reply out
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		reply, err := ctrl.Chat(r.Context(), req)
		if errors.Is(err, controllers.ErrEmptyTranscript) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			logging.ErrorLogger.Error("chat backend failure", zap.Error(err))
			writeError(w, http.StatusInternalServerError, genericChatError)
			return
		}
		writeJSON(w, http.StatusOK, types.ChatReply{Reply: reply})
	})

	// GET /api/chat/ws : same contract, reply streamed as text frames
	r.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var req types.ChatRequest
		if err := json.Unmarshal(data, &req); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid request body"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid request")
			return
		}

		ch, err := ctrl.ChatStream(ctx, req)
		if errors.Is(err, controllers.ErrEmptyTranscript) {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+err.Error()+`"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid request")
			return
		}
		if err != nil {
			logging.ErrorLogger.Error("chat stream backend failure", zap.Error(err))
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"`+genericChatError+`"}`))
			conn.Close(websocket.StatusInternalError, "backend error")
			return
		}

		for chunk := range ch {
			if err := conn.Write(ctx, websocket.MessageText, []byte(chunk)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})

	return r
}

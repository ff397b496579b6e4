package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// Notifier pushes operational events to the team. Best effort only:
// failures are logged, never propagated.
type Notifier interface {
	NotifyVendorRegistered(businessName, email string)
}

// TelegramService posts to the ops chat over the Bot API.
type TelegramService struct {
	token     string
	baseURL   string
	opsChatID int64
	client    *http.Client
}

func NewTelegramService(botToken string, opsChatID int64) *TelegramService {
	return &TelegramService{
		token:     botToken,
		baseURL:   fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		opsChatID: opsChatID,
		client:    &http.Client{},
	}
}

type tgResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *TelegramService) NotifyVendorRegistered(businessName, email string) {
	text := fmt.Sprintf("New vendor registered: <b>%s</b> (%s)", businessName, email)
	if err := t.sendMessage(t.opsChatID, text); err != nil {
		log.Printf("[tg][vendor-registered] send failed: %v", err)
	}
}

func (t *TelegramService) sendMessage(chatID int64, text string) error {
	if t == nil || t.token == "" || chatID == 0 {
		log.Printf("[tg][skip] token or chatID empty (token? %v chatID=%d)", t != nil && t.token != "", chatID)
		return nil
	}
	body := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", t.baseURL+"/sendMessage", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var api tgResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode != 200 || !api.Ok {
		return fmt.Errorf("telegram sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}
	return nil
}

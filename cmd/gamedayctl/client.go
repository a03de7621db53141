package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

func runGames(apiURL, date string, out io.Writer) error {
	u := apiURL + "/games"
	if date != "" {
		u += "?date=" + url.QueryEscape(date)
	}
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func runGotd(apiURL string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/games/gotd")
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func runDetail(apiURL, gameID string, out io.Writer) error {
	if _, err := strconv.ParseInt(gameID, 10, 64); err != nil {
		return fmt.Errorf("invalid game id %q", gameID)
	}
	resp, err := http.Get(apiURL + "/games/" + gameID)
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func runVote(apiURL string, userID int64, gameID string, out io.Writer) error {
	if _, err := strconv.ParseInt(gameID, 10, 64); err != nil {
		return fmt.Errorf("invalid game id %q", gameID)
	}
	req, err := http.NewRequest(http.MethodPost, apiURL+"/games/"+gameID+"/vote", nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-User-ID", strconv.FormatInt(userID, 10))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	return copyResponse(resp, out)
}

func copyResponse(resp *http.Response, out io.Writer) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err := io.Copy(out, resp.Body)
	return err
}

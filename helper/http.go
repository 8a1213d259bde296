package helper

import (
	"io"
	"net/http"
)

func call(resp *http.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func do(method string, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}
	if header != nil {
		req.Header = header
	}
	client := &http.Client{}
	return call(client.Do(req))
}

// Get calls the URL with HTTP GET
func Get(url string) ([]byte, error) {
	return call(http.Get(url))
}

// GetH calls the URL with HTTP GET and the given header
func GetH(url string, header http.Header) ([]byte, error) {
	return do(http.MethodGet, url, header)
}

// Post calls the URL with HTTP POST
func Post(url string, header http.Header) ([]byte, error) {
	return do(http.MethodPost, url, header)
}

// Delete calls the URL with HTTP DELETE
func Delete(url string, header http.Header) ([]byte, error) {
	return do(http.MethodDelete, url, header)
}

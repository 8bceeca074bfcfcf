package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cliente de terminal que recorre los flujos del backend por HTTP:
// login, artículos, progreso y asistente.
func main() {
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	client := &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	if err := client.health(); err != nil {
		log.Fatalf("backend no disponible en %s: %v", baseURL, err)
	}
	fmt.Printf("Conectado a %s\n", baseURL)

	for client.token == "" {
		fmt.Print("Email: ")
		email, _ := reader.ReadString('\n')
		fmt.Print("Password: ")
		password, _ := reader.ReadString('\n')
		if err := client.login(strings.TrimSpace(email), strings.TrimSpace(password)); err != nil {
			fmt.Printf("login: %v\n", err)
			continue
		}
		fmt.Printf("Sesión iniciada (rol: %s)\n", client.role)
	}

	for {
		fmt.Println("\n===== DSA Tutor =====")
		fmt.Println("[1] Listar artículos")
		fmt.Println("[2] Marcar artículo como leído")
		fmt.Println("[3] Ver progreso")
		fmt.Println("[4] Preguntar al asistente")
		fmt.Println("[Q] Salir")
		fmt.Print("Opción: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		switch {
		case strings.EqualFold(choice, "Q"):
			return
		case choice == "1":
			client.listArticles()
		case choice == "2":
			fmt.Print("ID del artículo: ")
			id, _ := reader.ReadString('\n')
			client.markRead(strings.TrimSpace(id))
		case choice == "3":
			client.showProgress()
		case choice == "4":
			fmt.Print("Pregunta: ")
			q, _ := reader.ReadString('\n')
			client.ask(strings.TrimSpace(q))
		}
	}
}

type apiClient struct {
	baseURL string
	http    *http.Client
	token   string
	role    string
}

func (c *apiClient) health() error {
	resp, err := c.http.Get(c.baseURL + "/")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func (c *apiClient) login(email, password string) error {
	var out struct {
		Token string `json:"token"`
		Role  string `json:"role"`
		Error string `json:"error"`
	}
	status, err := c.call(http.MethodPost, "/api/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s (status %d)", out.Error, status)
	}
	c.token = out.Token
	c.role = out.Role
	return nil
}

func (c *apiClient) listArticles() {
	var articles []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	status, err := c.call(http.MethodGet, "/api/users/articles", nil, &articles)
	if err != nil || status != http.StatusOK {
		fmt.Printf("error listando artículos (status %d): %v\n", status, err)
		return
	}
	if len(articles) == 0 {
		fmt.Println("No hay artículos todavía.")
		return
	}
	for _, a := range articles {
		fmt.Printf("- %s [%s] (ID: %s)\n", a.Title, a.Category, a.ID)
	}
}

func (c *apiClient) markRead(articleID string) {
	var out struct {
		Error string `json:"error"`
	}
	status, err := c.call(http.MethodPost, "/api/users/questions/"+articleID+"/mark-read", nil, &out)
	if err != nil || status != http.StatusOK {
		fmt.Printf("error marcando lectura (status %d): %s\n", status, out.Error)
		return
	}
	fmt.Println("Marcado como leído.")
}

func (c *apiClient) showProgress() {
	var out struct {
		Summary struct {
			Completed     int     `json:"completed"`
			TotalArticles int     `json:"total_articles"`
			Percent       float64 `json:"percent"`
		} `json:"summary"`
	}
	status, err := c.call(http.MethodGet, "/api/users/user/progress", nil, &out)
	if err != nil || status != http.StatusOK {
		fmt.Printf("error consultando progreso (status %d): %v\n", status, err)
		return
	}
	fmt.Printf("Completados: %d/%d (%.1f%%)\n",
		out.Summary.Completed, out.Summary.TotalArticles, out.Summary.Percent)
}

func (c *apiClient) ask(question string) {
	var out struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	status, err := c.call(http.MethodPost, "/api/ai/assist", map[string]string{
		"question": question,
	}, &out)
	if err != nil || status != http.StatusOK {
		fmt.Printf("error del asistente (status %d): %s\n", status, out.Error)
		return
	}
	fmt.Println("\n--- Respuesta ---")
	fmt.Println(out.Response)
}

func (c *apiClient) call(method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

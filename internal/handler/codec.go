package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/repo"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/service"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffman"
)

// maxBodyBytes bounds the in-memory encode/decode endpoints.
const maxBodyBytes = 32 << 20

type CodecHandler struct {
	svc *service.CodecService
}

func NewCodecHandler(s *service.CodecService) *CodecHandler {
	return &CodecHandler{svc: s}
}

type fileReq struct {
	Path     string `json:"path"     binding:"required"`
	Output   string `json:"output"`
	Alphabet string `json:"alphabet"`
}

func (h *CodecHandler) Compress(c *gin.Context) {
	h.runFile(c, service.CompressedName, h.svc.CompressTo)
}

func (h *CodecHandler) Decompress(c *gin.Context) {
	h.runFile(c, service.DecompressedName, h.svc.DecompressTo)
}

type fileOp func(ctx context.Context, in, out string, a huffman.Alphabet) (*model.Run, error)

func (h *CodecHandler) runFile(c *gin.Context, defaultName string, op fileOp) {
	var req fileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, err := h.alphabet(req.Alphabet)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out := req.Output
	if out == "" {
		out = filepath.Join(filepath.Dir(req.Path), defaultName)
	}
	run, err := op(c.Request.Context(), req.Path, out, a)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, run)
}

// Encode compresses the raw request body and responds with the container.
func (h *CodecHandler) Encode(c *gin.Context) {
	a, err := h.alphabet(c.Query("alphabet"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	// 빈 본문은 심볼 수 0 인 컨테이너가 됨
	container, err := huffman.EncodeBytes(body, a)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", container)
}

// Decode expands a container sent as the request body.
func (h *CodecHandler) Decode(c *gin.Context) {
	a, err := h.alphabet(c.Query("alphabet"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var out bytes.Buffer
	src := http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	if _, err := huffman.Decompress(src, &out, a); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ct := "text/plain; charset=utf-8"
	if a == huffman.Bytes {
		ct = "application/octet-stream"
	}
	c.Data(http.StatusOK, ct, out.Bytes())
}

func (h *CodecHandler) GetRun(c *gin.Context) {
	run, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *CodecHandler) ListRuns(c *gin.Context) {
	runs, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (h *CodecHandler) alphabet(s string) (huffman.Alphabet, error) {
	if s == "" {
		return h.svc.Alphabet(), nil
	}
	return huffman.ParseAlphabet(s)
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInput):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, huffman.ErrEmptyInput),
		errors.Is(err, huffman.ErrCorruptHeader),
		errors.Is(err, huffman.ErrTruncatedPayload),
		errors.Is(err, huffman.ErrFrequencyOverflow),
		errors.Is(err, huffman.ErrRead):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

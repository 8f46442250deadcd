package huffman

import "errors"

var (
	// ErrEmptyInput: 빈도표가 비어 있음 (압축할 것이 없음)
	ErrEmptyInput = errors.New("empty input")

	ErrRead  = errors.New("read failed")
	ErrWrite = errors.New("write failed")

	// ErrCorruptHeader는 헤더가 잘렸거나 심볼 수/빈도가 범위를 벗어난 경우
	ErrCorruptHeader = errors.New("corrupt header")

	ErrTruncatedPayload = errors.New("truncated payload")

	// 헤더의 빈도 필드는 int32
	ErrFrequencyOverflow = errors.New("symbol frequency exceeds int32")
)

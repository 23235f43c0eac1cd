package rangefill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter 向用户索取一个值；ok=false 表示用户取消
type Prompter interface {
	PromptValue(ctx context.Context, message string) (input string, ok bool, err error)
}

const (
	promptMessage  = "입력할 값을 입력하세요"
	invalidMessage = "숫자를 입력하세요"
)

// Prompt 阻塞索取数值：无效输入时重新提示，直到得到合法数字或用户取消
func Prompt(ctx context.Context, p Prompter) (value int, ok bool, err error) {
	message := promptMessage
	for {
		input, ok, err := p.PromptValue(ctx, message)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		v, err := ParseValue(input)
		if err == nil {
			return v, true, nil
		}
		message = invalidMessage
	}
}

// LinePrompter 基于行输入的 Prompter（终端使用），输入 "q" 视为取消
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewLinePrompter 创建行输入提示器
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(r), writer: w}
}

// PromptValue 打印提示并读取一行；EOF 视为取消
func (p *LinePrompter) PromptValue(ctx context.Context, message string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if _, err := fmt.Fprintf(p.writer, "%s (q: 취소): ", message); err != nil {
		return "", false, err
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	line = strings.TrimSpace(line)
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}
	if strings.EqualFold(line, "q") {
		return "", false, nil
	}
	return line, true, nil
}

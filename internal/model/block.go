package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockVideo    BlockType = "video"
	BlockText     BlockType = "text"
	BlockQuiz     BlockType = "quiz"
	BlockDownload BlockType = "download"
)

func (t BlockType) Valid() bool {
	switch t {
	case BlockVideo, BlockText, BlockQuiz, BlockDownload:
		return true
	}
	return false
}

type QuizQuestion struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// VideoMeta 视频块元数据
type VideoMeta struct {
	Provider string `json:"provider,omitempty"` // youtube / vimeo / upload / wistia
	Duration string `json:"duration,omitempty"`
}

// QuizMeta 测验块元数据，与 Value 中的序列化题目保持一致
type QuizMeta struct {
	Questions []QuizQuestion `json:"questions"`
}

// DownloadMeta 下载块元数据
type DownloadMeta struct {
	FileName string `json:"fileName,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// ContentBlock 课时内容块，按 Type 区分变体。
// Value 的含义取决于类型：video 为 URL，text 为 Markdown，
// quiz 为序列化的题目列表，download 为文件 URL。
type ContentBlock struct {
	ID    string    `json:"id"`
	Type  BlockType `json:"type"`
	Value string    `json:"value"`

	// 每个类型只携带自己的元数据，序列化时折叠进 metadata 字段
	Video    *VideoMeta    `json:"-"`
	Quiz     *QuizMeta     `json:"-"`
	Download *DownloadMeta `json:"-"`
}

type blockEnvelope struct {
	ID       string          `json:"id"`
	Type     BlockType       `json:"type"`
	Value    string          `json:"value"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	env := blockEnvelope{ID: b.ID, Type: b.Type, Value: b.Value}

	var meta interface{}
	switch b.Type {
	case BlockVideo:
		if b.Video != nil {
			meta = b.Video
		}
	case BlockQuiz:
		if b.Quiz != nil {
			meta = b.Quiz
		}
	case BlockDownload:
		if b.Download != nil {
			meta = b.Download
		}
	}

	if meta != nil {
		raw, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		env.Metadata = raw
	}

	return json.Marshal(env)
}

func (b *ContentBlock) UnmarshalJSON(data []byte) error {
	var env blockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*b = ContentBlock{ID: env.ID, Type: env.Type, Value: env.Value}
	if len(env.Metadata) == 0 {
		return nil
	}

	switch env.Type {
	case BlockVideo:
		b.Video = &VideoMeta{}
		return json.Unmarshal(env.Metadata, b.Video)
	case BlockQuiz:
		b.Quiz = &QuizMeta{}
		return json.Unmarshal(env.Metadata, b.Quiz)
	case BlockDownload:
		b.Download = &DownloadMeta{}
		return json.Unmarshal(env.Metadata, b.Download)
	}
	return nil
}

func NewTextBlock(markdown string) ContentBlock {
	return ContentBlock{ID: uuid.NewString(), Type: BlockText, Value: markdown}
}

func NewVideoBlock(url string, meta *VideoMeta) ContentBlock {
	return ContentBlock{ID: uuid.NewString(), Type: BlockVideo, Value: url, Video: meta}
}

func NewDownloadBlock(url string, meta *DownloadMeta) ContentBlock {
	return ContentBlock{ID: uuid.NewString(), Type: BlockDownload, Value: url, Download: meta}
}

// NewQuizBlock 构造测验块，Value 与 metadata.questions 写入同一份题目
func NewQuizBlock(questions []QuizQuestion) (ContentBlock, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return ContentBlock{}, err
	}
	return ContentBlock{
		ID:    uuid.NewString(),
		Type:  BlockQuiz,
		Value: string(raw),
		Quiz:  &QuizMeta{Questions: questions},
	}, nil
}

// NewBlock 按类型构造内容块，metadata 为对应变体的 JSON（可空）。
// quiz 类型会把题目同步写进 Value，保持两份数据一致。
func NewBlock(t BlockType, value string, metadata json.RawMessage) (ContentBlock, error) {
	switch t {
	case BlockText:
		return NewTextBlock(value), nil

	case BlockVideo:
		var meta *VideoMeta
		if len(metadata) > 0 {
			meta = &VideoMeta{}
			if err := json.Unmarshal(metadata, meta); err != nil {
				return ContentBlock{}, err
			}
		}
		return NewVideoBlock(value, meta), nil

	case BlockDownload:
		var meta *DownloadMeta
		if len(metadata) > 0 {
			meta = &DownloadMeta{}
			if err := json.Unmarshal(metadata, meta); err != nil {
				return ContentBlock{}, err
			}
		}
		return NewDownloadBlock(value, meta), nil

	case BlockQuiz:
		var questions []QuizQuestion
		if len(metadata) > 0 {
			var meta QuizMeta
			if err := json.Unmarshal(metadata, &meta); err != nil {
				return ContentBlock{}, err
			}
			questions = meta.Questions
		} else if value != "" {
			if err := json.Unmarshal([]byte(value), &questions); err != nil {
				return ContentBlock{}, err
			}
		}
		return NewQuizBlock(questions)
	}

	return ContentBlock{}, fmt.Errorf("unknown block type %q", t)
}

func (b ContentBlock) Clone() ContentBlock {
	out := b
	if b.Video != nil {
		v := *b.Video
		out.Video = &v
	}
	if b.Download != nil {
		d := *b.Download
		out.Download = &d
	}
	if b.Quiz != nil {
		q := QuizMeta{Questions: make([]QuizQuestion, len(b.Quiz.Questions))}
		copy(q.Questions, b.Quiz.Questions)
		for i := range q.Questions {
			opts := make([]string, len(b.Quiz.Questions[i].Options))
			copy(opts, b.Quiz.Questions[i].Options)
			q.Questions[i].Options = opts
		}
		out.Quiz = &q
	}
	return out
}

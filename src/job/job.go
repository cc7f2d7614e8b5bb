package job

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Job is one unit of sprite work pulled off the queue. Op selects which
// spec is consulted; the provider/consumer details stay raw JSON so each
// backend can define its own shape.
type Job struct {
	ID string `json:"id"`

	Op Op `json:"op"`

	Spin   *SpinSpec   `json:"spin,omitempty"`
	Split  *SplitSpec  `json:"split,omitempty"`
	Encode *EncodeSpec `json:"encode,omitempty"`

	RawProvider           RawProvider         `json:"raw_provider"`
	RawProviderDetails    jsoniter.RawMessage `json:"raw_provider_details"`
	ResultConsumer        ResultConsumer      `json:"result_consumer"`
	ResultConsumerDetails jsoniter.RawMessage `json:"result_consumer_details"`
}

type Op string

const (
	// OpSpin synthesizes a rotating-coin animation from a still image.
	OpSpin Op = "spin"
	// OpSplit slices a spritesheet into individual frame files.
	OpSplit Op = "split"
	// OpGIF re-encodes a spritesheet's frames as a timed looping GIF.
	OpGIF Op = "gif"
	// OpSheet packs frames into a single spritesheet PNG.
	OpSheet Op = "sheet"
)

// SpinSpec drives OpSpin, and OpSheet when frames should be synthesized
// rather than extracted.
type SpinSpec struct {
	Frames  int `json:"frames"`
	DelayMS int `json:"delay_ms"`
}

// SplitSpec drives OpSplit. Zero frame dimensions mean "infer from the
// sheet size".
type SplitSpec struct {
	FrameWidth  int    `json:"frame_width"`
	FrameHeight int    `json:"frame_height"`
	Prefix      string `json:"prefix"`
	StartIndex  int    `json:"start_index"`
	Padding     int    `json:"padding"`
}

// EncodeSpec drives OpGIF and grid-sourced OpSheet. Zero frame
// dimensions mean "infer from the sheet size".
type EncodeSpec struct {
	FrameWidth  int `json:"frame_width"`
	FrameHeight int `json:"frame_height"`
	DelayMS     int `json:"delay_ms"`
}

// File describes one delivered artifact.
type File struct {
	Name        string        `json:"name"`
	Size        int           `json:"size"`
	ContentType string        `json:"content_type"`
	Animated    bool          `json:"animated"`
	Frames      int           `json:"frames"`
	TimeTaken   time.Duration `json:"time_taken"`
}

type RawProviderDetailsAws struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

type RawProviderDetailsLocal struct {
	Path string `json:"path"`
}

type ResultConsumerDetailsAws struct {
	Bucket    string `json:"bucket"`
	KeyFolder string `json:"key_folder"`
}

type ResultConsumerDetailsLocal struct {
	PathFolder string `json:"path_folder"`
}

type RawProvider string

const (
	AwsProvider   RawProvider = "aws"
	LocalProvider RawProvider = "local"
)

type ResultConsumer string

const (
	AwsConsumer   ResultConsumer = "aws"
	LocalConsumer ResultConsumer = "local"
)

package embeddings

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the pretrained sentence-embedding model. All paths come
// from the environment at startup; the model is loaded once and shared.
type Config struct {
	// LibraryPath points at the onnxruntime shared library.
	LibraryPath string
	// ModelPath points at the exported ONNX encoder.
	ModelPath string
	// TokenizerPath points at the matching tokenizer.json.
	TokenizerPath string
	// MaxSeqLen caps the token sequence; 0 means 128.
	MaxSeqLen int
}

var ortInit sync.Once

// Encoder turns a phrase into a mean-pooled sentence embedding using an
// ONNX transformer encoder. It is read-only after construction and safe
// for concurrent use.
type Encoder struct {
	session   *ort.DynamicAdvancedSession
	tk        *tokenizer.Tokenizer
	maxSeqLen int
}

// NewEncoder initializes the onnxruntime environment (once per process),
// loads the tokenizer and opens an inference session.
func NewEncoder(cfg Config) (*Encoder, error) {
	if cfg.ModelPath == "" || cfg.TokenizerPath == "" {
		return nil, errors.New("embeddings: model and tokenizer paths are required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 128
	}

	var initErr error
	ortInit.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initialize onnxruntime: %w", initErr)
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"last_hidden_state"}, nil)
	if err != nil {
		return nil, fmt.Errorf("open model session: %w", err)
	}

	return &Encoder{session: session, tk: tk, maxSeqLen: cfg.MaxSeqLen}, nil
}

// Close releases the inference session.
func (e *Encoder) Close() error {
	if e == nil || e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}

// Encode returns the mean-pooled embedding of one phrase.
func (e *Encoder) Encode(text string) ([]float32, error) {
	if e == nil || e.session == nil {
		return nil, errors.New("embeddings: encoder is closed")
	}

	encoding, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenize %q: %w", text, err)
	}

	ids := encoding.Ids
	mask := encoding.AttentionMask
	if len(ids) == 0 {
		return nil, fmt.Errorf("tokenize %q: empty encoding", text)
	}
	if len(ids) > e.maxSeqLen {
		ids = ids[:e.maxSeqLen]
		mask = mask[:e.maxSeqLen]
	}

	seqLen := len(ids)
	inputIds := make([]int64, seqLen)
	attentionMask := make([]int64, seqLen)
	for i := 0; i < seqLen; i++ {
		inputIds[i] = int64(ids[i])
		attentionMask[i] = int64(mask[i])
	}

	shape := ort.NewShape(1, int64(seqLen))
	idsTensor, err := ort.NewTensor(shape, inputIds)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil}
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}
	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, errors.New("embeddings: unexpected model output type")
	}
	defer hidden.Destroy()

	return meanPool(hidden.GetData(), hidden.GetShape(), attentionMask)
}

// meanPool averages the token embeddings that carry attention, then l2
// normalizes the result.
func meanPool(data []float32, shape ort.Shape, mask []int64) ([]float32, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("embeddings: unexpected output rank %d", len(shape))
	}
	seqLen := int(shape[1])
	hiddenSize := int(shape[2])
	if len(data) < seqLen*hiddenSize || seqLen > len(mask) {
		return nil, errors.New("embeddings: output shape mismatch")
	}

	pooled := make([]float32, hiddenSize)
	attended := 0
	for token := 0; token < seqLen; token++ {
		if mask[token] == 0 {
			continue
		}
		attended++
		row := data[token*hiddenSize : (token+1)*hiddenSize]
		for i, v := range row {
			pooled[i] += v
		}
	}
	if attended == 0 {
		return nil, errors.New("embeddings: no attended tokens")
	}
	for i := range pooled {
		pooled[i] /= float32(attended)
	}

	normalize(pooled)
	return pooled, nil
}

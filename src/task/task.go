package task

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	Aws "github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/byteKnight2010/spriteToolKit/src/aws"
	"github.com/byteKnight2010/spriteToolKit/src/containers"
	"github.com/byteKnight2010/spriteToolKit/src/encoder"
	"github.com/byteKnight2010/spriteToolKit/src/extract"
	"github.com/byteKnight2010/spriteToolKit/src/global"
	"github.com/byteKnight2010/spriteToolKit/src/job"
	"github.com/byteKnight2010/spriteToolKit/src/sprite"
	"github.com/byteKnight2010/spriteToolKit/src/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrUnknownJobProvider = fmt.Errorf("unknown job provider")
	ErrUnknownJobOp       = fmt.Errorf("unknown job op")
)

type Task struct {
	id uuid.UUID

	job job.Job

	mtx       sync.Mutex
	started   bool
	stopped   bool
	completed bool
	failed    error

	files []job.File

	dir string

	events chan TaskEvent

	ctx    context.Context
	cancel context.CancelFunc
}

func New(ctx context.Context, job job.Job) *Task {
	ctx, cancel := context.WithCancel(ctx)
	id, _ := uuid.NewRandom()
	return &Task{
		id:     id,
		ctx:    ctx,
		cancel: cancel,
		job:    job,
		events: make(chan TaskEvent, 20),
	}
}

func (t *Task) ID() uuid.UUID {
	return t.id
}

func (t *Task) Start(ctx global.Context) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.started || t.stopped || t.completed {
		return
	}

	t.started = true

	go t.start(ctx)
}

func (t *Task) start(ctx global.Context) {
	defer close(t.events)
	defer func() {
		if err := t.cleanup(); err != nil {
			logrus.Error("failed to cleanup: ", err)
		}
	}()

	t.emit(Started, 0)

	var (
		err  error
		data []byte
	)

	switch t.job.RawProvider {
	case job.AwsProvider:
		providerDetails := job.RawProviderDetailsAws{}
		if err = json.Unmarshal(t.job.RawProviderDetails, &providerDetails); err != nil {
			goto completed
		}

		buf := Aws.NewWriteAtBuffer([]byte{})
		if err = ctx.Instances().AwsS3.DownloadFile(t.ctx, providerDetails.Bucket, providerDetails.Key, buf); err != nil {
			goto completed
		}

		data = buf.Bytes()
	case job.LocalProvider:
		providerDetails := job.RawProviderDetailsLocal{}
		if err = json.Unmarshal(t.job.RawProviderDetails, &providerDetails); err != nil {
			goto completed
		}

		if data, err = os.ReadFile(providerDetails.Path); err != nil {
			goto completed
		}
	default:
		err = ErrUnknownJobProvider
		goto completed
	}

	t.emit(Downloaded, 0)

	if t.ctx.Err() != nil {
		err = t.ctx.Err()
		goto completed
	}

	{
		var src image.Image
		if src, _, err = containers.Decode(data); err != nil {
			goto completed
		}

		t.emit(Decoded, 0)

		dir := path.Join(ctx.Config().WorkingDir, t.id.String())
		if err = os.MkdirAll(dir, 0700); err != nil {
			goto completed
		}

		t.dir = dir

		if err = t.process(src, dir); err != nil {
			goto completed
		}

		files := []string{}
		if err = filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}

			if ext := filepath.Ext(path); ext == ".png" || ext == ".gif" {
				files = append(files, path)
			}

			return nil
		}); err != nil {
			goto completed
		}

		switch t.job.ResultConsumer {
		case job.AwsConsumer:
			consumerDetails := job.ResultConsumerDetailsAws{}
			if err = json.Unmarshal(t.job.ResultConsumerDetails, &consumerDetails); err != nil {
				goto completed
			}
			errCh := make(chan error)
			wg := sync.WaitGroup{}
			wg.Add(len(files))
			for _, v := range files {
				go func(v string) {
					defer wg.Done()
					f, err := os.Open(v)
					if err != nil {
						errCh <- err
						return
					}
					defer f.Close()
					errCh <- ctx.Instances().AwsS3.UploadFile(
						t.ctx,
						consumerDetails.Bucket,
						path.Join(consumerDetails.KeyFolder, path.Base(v)),
						f,
						utils.StringPointer(mime.TypeByExtension(path.Ext(v))),
						aws.AclPublicRead,
						aws.DefaultCacheControl,
					)
				}(v)
			}
			go func() {
				wg.Wait()
				close(errCh)
			}()

			for e := range errCh {
				err = multierror.Append(err, e).ErrorOrNil()
			}
			if err != nil {
				goto completed
			}
		case job.LocalConsumer:
			consumerDetails := job.ResultConsumerDetailsLocal{}
			if err = json.Unmarshal(t.job.ResultConsumerDetails, &consumerDetails); err != nil {
				goto completed
			}

			err = os.MkdirAll(consumerDetails.PathFolder, 0700)
			if err != nil {
				goto completed
			}

			var f []byte
			for _, v := range files {
				f, err = os.ReadFile(v)
				if err != nil {
					goto completed
				}

				err = os.WriteFile(path.Join(consumerDetails.PathFolder, path.Base(v)), f, 0600)
				if err != nil {
					goto completed
				}
			}
		}
	}

completed:
	t.completed = true
	t.failed = err
	t.cancel()
	if err != nil {
		t.emit(Failed, 0)
	} else {
		t.emit(Completed, 0)
	}
}

// process runs the job's frame pipeline and leaves artifacts in dir.
func (t *Task) process(src image.Image, dir string) error {
	start := time.Now()

	switch t.job.Op {
	case job.OpSpin:
		spec := t.job.Spin
		seq, err := sprite.Spin(src, spec.Frames)
		if err != nil {
			return err
		}

		t.emit(Encoding, 0)
		name := path.Join(dir, "spin.gif")
		if err := encoder.ExportGIF(name, seq, spec.DelayMS); err != nil {
			return err
		}
		t.emit(EncodeComplete, 0)
		return t.record(name, true, len(seq), start)

	case job.OpSplit:
		spec := t.job.Split
		fw, fh := spec.FrameWidth, spec.FrameHeight
		if fw == 0 || fh == 0 {
			b := src.Bounds()
			fw, fh = sprite.Infer(b.Dx(), b.Dy())
		}

		outDir := path.Join(dir, "frames")
		engine := extract.Engine{}
		t.emit(Extracting, 0)
		events, err := engine.Run(t.ctx, src, extract.Job{
			FrameWidth:  fw,
			FrameHeight: fh,
			OutputDir:   outDir,
			Prefix:      spec.Prefix,
			StartIndex:  spec.StartIndex,
			Padding:     spec.Padding,
		})
		if err != nil {
			return err
		}

		for ev := range events {
			switch ev.Type {
			case extract.Progress:
				t.emit(ExtractProgress, ev.Percent)
			case extract.Completed:
				t.emit(ExtractComplete, 100)
			case extract.Cancelled:
				return context.Canceled
			case extract.Failed:
				return fmt.Errorf("extraction failed: %s", ev.Message)
			}
		}

		return t.recordDir(outDir, start)

	case job.OpGIF:
		seq, err := t.gridFrames(src)
		if err != nil {
			return err
		}

		t.emit(Encoding, 0)
		name := path.Join(dir, "animation.gif")
		if err := encoder.ExportGIF(name, seq, t.job.Encode.DelayMS); err != nil {
			return err
		}
		t.emit(EncodeComplete, 0)
		return t.record(name, true, len(seq), start)

	case job.OpSheet:
		var (
			seq sprite.Sequence
			err error
		)
		if t.job.Spin != nil {
			seq, err = sprite.Spin(src, t.job.Spin.Frames)
		} else {
			seq, err = t.gridFrames(src)
		}
		if err != nil {
			return err
		}

		t.emit(Encoding, 0)
		name := path.Join(dir, "sheet.png")
		if err := encoder.ExportSheet(name, seq); err != nil {
			return err
		}
		t.emit(EncodeComplete, 0)
		return t.record(name, false, len(seq), start)

	default:
		return ErrUnknownJobOp
	}
}

// gridFrames extracts the in-memory frame sequence for the re-encoding
// ops, inferring frame dimensions when the job leaves them zero.
func (t *Task) gridFrames(src image.Image) (sprite.Sequence, error) {
	spec := t.job.Encode
	fw, fh := spec.FrameWidth, spec.FrameHeight
	if fw == 0 || fh == 0 {
		b := src.Bounds()
		fw, fh = sprite.Infer(b.Dx(), b.Dy())
	}

	seq, stats, err := sprite.Grid(src, fw, fh)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("all %d extracted frames are empty", stats.Cells)
	}

	return seq, nil
}

func (t *Task) record(name string, animated bool, frames int, start time.Time) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}

	t.files = append(t.files, job.File{
		Name:        path.Base(name),
		Size:        int(info.Size()),
		ContentType: mime.TypeByExtension(path.Ext(name)),
		Animated:    animated,
		Frames:      frames,
		TimeTaken:   time.Since(start),
	})
	return nil
}

func (t *Task) recordDir(dir string, start time.Time) error {
	return filepath.Walk(dir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		return t.record(p, false, 1, start)
	})
}

func (t *Task) emit(typ TaskEventType, percent int) {
	t.events <- TaskEvent{
		Type:      typ,
		Percent:   percent,
		Timestamp: time.Now(),
	}
}

func (t *Task) Stop() {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.events <- TaskEvent{
		Type:      Stopped,
		Timestamp: time.Now(),
	}

	t.stopped = true
	t.cancel()
}

func (t *Task) Done() <-chan struct{} {
	return t.ctx.Done()
}

func (t *Task) Events() <-chan TaskEvent {
	return t.events
}

func (t *Task) Completed() bool {
	return t.completed
}

func (t *Task) Failed() error {
	return t.failed
}

func (t *Task) Started() bool {
	return t.started
}

func (t *Task) Stopped() bool {
	return t.stopped
}

func (t *Task) Files() []job.File {
	return t.files
}

func (t *Task) cleanup() error {
	if !t.started {
		return nil
	}

	t.emit(Cleaned, 0)

	t.cancel()
	if t.dir == "" {
		return nil
	}
	return os.RemoveAll(t.dir)
}

func (t *Task) Job() job.Job {
	return t.job
}

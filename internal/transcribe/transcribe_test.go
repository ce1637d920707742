package transcribe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zettelkit/zettelkit/internal/config"
)

func testSetup(t *testing.T) (*config.Config, string) {
	t.Helper()

	audio := filepath.Join(t.TempDir(), "recording.m4a")
	require.NoError(t, os.WriteFile(audio, []byte("audio"), 0600))

	cfg := &config.Config{}
	cfg.Transcribe.WhisperBin = "whisper-cli"
	cfg.Transcribe.ModelPath = "/models/ggml-large-v3.bin"
	cfg.Transcribe.Language = "de"
	cfg.Transcribe.Threads = 8
	return cfg, audio
}

func TestTranscriber_runPreChecks_MissingAudio(t *testing.T) {
	cfg, _ := testSetup(t)
	mockExec := exec.NewMockExecIface(t)
	tr := NewTranscriber(cfg, mockExec)

	err := tr.runPreChecks(filepath.Join(t.TempDir(), "missing.m4a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.m4a")
}

func TestTranscriber_runPreChecks_MissingModel(t *testing.T) {
	cfg, audio := testSetup(t)
	cfg.Transcribe.ModelPath = ""
	mockExec := exec.NewMockExecIface(t)
	tr := NewTranscriber(cfg, mockExec)

	err := tr.runPreChecks(audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model path")
}

func TestTranscriber_runPreChecks_MissingBinary(t *testing.T) {
	cfg, audio := testSetup(t)
	mockExec := exec.NewMockExecIface(t)
	mockExec.On("LookPath", "ffmpeg").Return("/usr/bin/ffmpeg", nil)
	mockExec.On("LookPath", "whisper-cli").Return("", errors.New("binary not found"))

	tr := NewTranscriber(cfg, mockExec)

	err := tr.runPreChecks(audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper-cli not found in PATH")
	mockExec.AssertExpectations(t)
}

func TestTranscriber_Transcribe_Success(t *testing.T) {
	cfg, audio := testSetup(t)
	mockExec := exec.NewMockExecIface(t)
	ffmpegCmd := exec.NewMockCmdIface(t)
	whisperCmd := exec.NewMockCmdIface(t)

	mockExec.On("LookPath", "ffmpeg").Return("/usr/bin/ffmpeg", nil)
	mockExec.On("LookPath", "whisper-cli").Return("/usr/bin/whisper-cli", nil)
	mockExec.On("Command", mock.Anything, "ffmpeg", mock.Anything).Return(ffmpegCmd)
	ffmpegCmd.On("CombinedOutput").Return([]byte(""), nil)
	mockExec.On("Command", mock.Anything, "whisper-cli", mock.Anything).Return(whisperCmd)
	whisperCmd.On("CombinedOutput").Return([]byte(""), nil)

	tr := NewTranscriber(cfg, mockExec)

	srtPath, err := tr.Transcribe(t.Context(), audio)
	require.NoError(t, err)

	wantSrt := filepath.Join(filepath.Dir(audio), "recording.srt")
	assert.Equal(t, wantSrt, srtPath)

	mockExec.AssertExpectations(t)
}

func TestTranscriber_Transcribe_FfmpegFails(t *testing.T) {
	cfg, audio := testSetup(t)
	mockExec := exec.NewMockExecIface(t)
	ffmpegCmd := exec.NewMockCmdIface(t)

	mockExec.On("LookPath", "ffmpeg").Return("/usr/bin/ffmpeg", nil)
	mockExec.On("LookPath", "whisper-cli").Return("/usr/bin/whisper-cli", nil)
	mockExec.On("Command", mock.Anything, "ffmpeg", mock.Anything).Return(ffmpegCmd)
	ffmpegCmd.On("CombinedOutput").Return([]byte("invalid data"), errors.New("exit status 1"))

	tr := NewTranscriber(cfg, mockExec)

	_, err := tr.Transcribe(t.Context(), audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg conversion failed")
}

func TestTranscriber_Transcribe_WhisperFails(t *testing.T) {
	cfg, audio := testSetup(t)
	mockExec := exec.NewMockExecIface(t)
	ffmpegCmd := exec.NewMockCmdIface(t)
	whisperCmd := exec.NewMockCmdIface(t)

	mockExec.On("LookPath", "ffmpeg").Return("/usr/bin/ffmpeg", nil)
	mockExec.On("LookPath", "whisper-cli").Return("/usr/bin/whisper-cli", nil)
	mockExec.On("Command", mock.Anything, "ffmpeg", mock.Anything).Return(ffmpegCmd)
	ffmpegCmd.On("CombinedOutput").Return([]byte(""), nil)
	mockExec.On("Command", mock.Anything, "whisper-cli", mock.Anything).Return(whisperCmd)
	whisperCmd.On("CombinedOutput").Return([]byte("model load failed"), errors.New("exit status 1"))

	tr := NewTranscriber(cfg, mockExec)

	_, err := tr.Transcribe(t.Context(), audio)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper transcription failed")
}

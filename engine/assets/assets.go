package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/jackal/engine/assets/loaders"
	"github.com/spaghettifunk/jackal/engine/core"
	"github.com/spaghettifunk/jackal/engine/renderer"
)

// pending change notifications beyond this are dropped until the loop drains them
const changeQueueSize = 64

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory, resolves asset paths for the
// shader and texture loaders and watches the directory for changes. The
// watcher runs on its own goroutine and hands changed paths to the game
// loop through a channel; everything else is called from the loop.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	shaders  *loaders.ShaderLoader
	textures *loaders.TextureLoader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		shaders:  &loaders.ShaderLoader{},
		textures: loaders.NewTextureLoader(),
		fsnotify: fsWatch,
		changes:  make(chan string, changeQueueSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(AssetTypeShader, am.shaders)
	am.registerLoader(AssetTypeImage, am.textures)
	return am, nil
}

// Initialize indexes assetsDir and starts watching it and its subdirectories.
func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	if err := am.addRecursive(root); err != nil {
		return err
	}
	// Shutdown waits on the watcher goroutine only once root is set
	am.root = root
	go am.start()

	core.LogInfo("watching %d assets in %s", len(am.assets), root)
	return nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// SetFlipTextures controls whether loaded images are stored bottom row first.
func (am *AssetManager) SetFlipTextures(flip bool) {
	am.textures.FlipY = flip
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// resolve turns an asset name into a path under the asset root. Absolute
// paths are used as they are.
func (am *AssetManager) resolve(name string) string {
	if filepath.IsAbs(name) || am.root == "" {
		return name
	}
	return filepath.Join(am.root, name)
}

func (am *AssetManager) touch(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	rel := am.relative(path)
	asset, exists := am.assets[rel]
	if !exists {
		asset = AssetInfo{Path: rel, Type: am.determineAssetType(rel)}
	}
	asset.LastLoaded = time.Now()
	am.assets[rel] = asset
}

// LoadSource reads a shader source file relative to the asset root.
func (am *AssetManager) LoadSource(name string) (string, error) {
	path := am.resolve(name)
	src, err := am.shaders.LoadSource(path)
	if err != nil {
		return "", fmt.Errorf("asset %q: %w", name, err)
	}
	am.touch(path)
	return src, nil
}

// LoadImage decodes an image file relative to the asset root.
func (am *AssetManager) LoadImage(name string) (*renderer.Image, error) {
	path := am.resolve(name)
	img, err := am.textures.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", name, err)
	}
	am.touch(path)
	return img, nil
}

// Asset returns what is known about an indexed asset.
func (am *AssetManager) Asset(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	info, ok := am.assets[am.relative(am.resolve(name))]
	return info, ok
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// PollChanges returns the assets changed on disk since the last call, each
// path once, without blocking.
func (am *AssetManager) PollChanges() []string {
	var changed []string
	seen := map[string]bool{}
	for {
		select {
		case path := <-am.changes:
			if !seen[path] {
				seen[path] = true
				changed = append(changed, path)
			}
		default:
			return changed
		}
	}
}

// Shutdown stops the watcher goroutine.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	if am.root == "" {
		// the watcher goroutine never started
		return am.fsnotify.Close()
	}
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogError("watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.notify(am.relative(e.Name))
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(path string) {
	select {
	case am.changes <- path:
	default:
		core.LogWarn("asset change queue full, dropping %s", path)
	}
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) relative(path string) string {
	if am.root == "" {
		return path
	}
	rel, err := filepath.Rel(am.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// handleFileEvent indexes a created or modified file. It reports whether
// the file is an asset.
func (am *AssetManager) handleFileEvent(path string) bool {
	rel := am.relative(path)
	assetType := am.determineAssetType(rel)
	if assetType == AssetTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[rel]
	info.Path = rel
	info.Type = assetType
	am.assets[rel] = info
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, am.relative(path))
}

func (am *AssetManager) determineAssetType(path string) AssetType {
	ext := strings.ToLower(filepath.Ext(path))
	for assetType, loader := range am.loaders {
		for _, e := range loader.Extensions() {
			if e == ext {
				return assetType
			}
		}
	}
	return AssetTypeNone
}

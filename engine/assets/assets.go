package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/resonance/engine/assets/loaders"
	"github.com/spaghettifunk/resonance/engine/core"
	"github.com/spaghettifunk/resonance/engine/renderer/device"
	"github.com/spaghettifunk/resonance/engine/renderer/metadata"
)

var ErrClosed = errors.New("asset manager already closed")

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
	// decoded data, dropped whenever the file changes
	cached *metadata.Resource
}

/**
 * @brief Indexes an assets directory and keeps the index current with
 * fsnotify. Assets are addressed by their slash separated path relative to
 * the directory, "circle.png" or "shaders/particles.vert".
 *
 * The watcher goroutine only touches the index. Changes reach the frame
 * thread as EVENT_CODE_ASSET_CHANGED posted on the event bus.
 */
type AssetManager struct {
	root    string
	assets  map[string]*AssetInfo
	loaders map[metadata.ResourceType]Loader
	bus     *core.EventBus

	ImageParams loaders.ImageParams

	mutex sync.RWMutex

	done     chan struct{}
	stopped  sync.WaitGroup
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
}

var _ device.ImageSource = (*AssetManager)(nil)

// NewAssetManager creates an idle manager. bus may be nil, changes are then
// only reflected in the index.
func NewAssetManager(bus *core.EventBus) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]*AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		bus:      bus,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	if am.isClosed {
		return ErrClosed
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	// Register loaders
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeText, &loaders.TextLoader{})

	if err := am.addRecursive(root); err != nil {
		return err
	}

	am.watching = true
	am.stopped.Add(1)
	go am.start()

	core.LogInfo("watching %d assets in %s", am.Len(), root)
	return nil
}

// Root is the absolute assets directory.
func (am *AssetManager) Root() string {
	return am.root
}

// Len is the number of indexed assets.
func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Has reports whether name is indexed.
func (am *AssetManager) Has(name string) bool {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	_, ok := am.assets[name]
	return ok
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return ErrClosed
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Image implements device.ImageSource. Decoded images are cached until the
// file changes on disk.
func (am *AssetManager) Image(name string) (*metadata.ImageData, error) {
	res, err := am.load(name, metadata.ResourceTypeImage, &am.ImageParams)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ImageData), nil
}

// Text returns the contents of a text asset.
func (am *AssetManager) Text(name string) (string, error) {
	res, err := am.load(name, metadata.ResourceTypeText, nil)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

// load returns the cached resource or reads it through its loader.
func (am *AssetManager) load(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	am.mutex.RLock()
	asset, exists := am.assets[name]
	var cached *metadata.Resource
	if exists {
		cached = asset.cached
	}
	am.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("asset %q: %w", name, core.ErrImageNotFound)
	}
	if asset.Type != resourceType {
		return nil, fmt.Errorf("asset %q is %s, not %s", name, asset.Type, resourceType)
	}
	if cached != nil {
		return cached, nil
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(asset.Path, params)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	am.mutex.Lock()
	// the file may have changed or vanished while it was being decoded
	if current, ok := am.assets[name]; ok && current == asset {
		asset.cached = res
		asset.LastLoaded = time.Now()
	}
	am.mutex.Unlock()

	return res, nil
}

// Shutdown stops the watcher and waits for its goroutine.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if !am.watching {
		return am.fsnotify.Close()
	}
	close(am.done)
	am.stopped.Wait()
	return nil
}

func (am *AssetManager) start() {
	defer am.stopped.Done()
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
						core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if name, ok := am.handleFileEvent(e.Name); ok {
					am.notify(name)
				}
			}
			// Can't stat a deleted directory, so just pretend that it's always a directory and
			// try to remove from the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) notify(name string) {
	if am.bus == nil {
		return
	}
	ctx := core.EventContext{}
	ctx.Data.Name = name
	am.bus.Post(core.EVENT_CODE_ASSET_CHANGED, am, ctx)
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
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

// assetName maps an absolute path to its index key.
func (am *AssetManager) assetName(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file. Returns the asset name when
// the file is one the manager loads.
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return "", false
	}
	name, ok := am.assetName(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = &AssetInfo{
		Path: path,
		Type: assetType,
	}
	return name, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, ok := am.assetName(path)
	if !ok {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".vert", ".frag", ".glsl", ".txt":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}

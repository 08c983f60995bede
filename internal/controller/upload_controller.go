package controller

import (
	"io"
	"os"
	"path/filepath"
	"souschef_backend/internal/service"
	"souschef_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storageService *service.StorageService
}

func NewUploadController(storageService *service.StorageService) *UploadController {
	return &UploadController{storageService: storageService}
}

// UploadThumbnail 上传课程封面图
// @Summary 上传课程封面图
// @Description 仅接受图片，返回可直接写入课程 thumbnail 字段的 URL
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件"
// @Success 201 {object} util.Response
// @Router /uploads/thumbnail [post]
func (ctl *UploadController) UploadThumbnail(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := "thumbnails/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	url, err := ctl.storageService.Upload(c.Request.Context(), filename, src, file.Size, mimeType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, gin.H{"url": url})
}

// UploadFile 上传课时附件
// @Summary 上传课时附件
// @Description 供 download/video 块使用。视频文件会探测时长和分辨率，
// 	返回值可直接作为块的 metadata
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "附件文件"
// @Success 201 {object} util.Response
// @Router /uploads/file [post]
func (ctl *UploadController) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	allowed := []string{util.MimeVideo, util.MimeImage, util.MimePDF, util.MimeZip, util.MimeOctetStream, "text/plain"}
	mimeType, err := util.ValidateMimeType(src, allowed)
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	ext := filepath.Ext(file.Filename)
	filename := "files/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext

	resp := gin.H{
		"fileName": file.Filename,
		"size":     file.Size,
		"mimeType": mimeType,
	}

	// 视频落盘探测时长后再上传，其余类型直接流式上传
	if util.IsVideo(mimeType) {
		tmp, err := os.CreateTemp("", "souschef-upload-*"+ext)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		defer os.Remove(tmp.Name())
		defer tmp.Close()

		if _, err := io.Copy(tmp, src); err != nil {
			util.LogInternalError(c, err)
			return
		}

		if info, err := util.GetVideoInfo(tmp.Name()); err == nil {
			resp["duration"] = info.FormatDuration()
			resp["width"] = info.Width
			resp["height"] = info.Height
		}

		if _, err := tmp.Seek(0, io.SeekStart); err != nil {
			util.LogInternalError(c, err)
			return
		}
		url, err := ctl.storageService.Upload(c.Request.Context(), filename, tmp, file.Size, mimeType)
		if err != nil {
			util.LogInternalError(c, err)
			return
		}
		resp["url"] = url
		util.Created(c, resp)
		return
	}

	url, err := ctl.storageService.Upload(c.Request.Context(), filename, src, file.Size, mimeType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	resp["url"] = url
	util.Created(c, resp)
}

package model

// 树编辑操作。全部是 (Course, 参数) -> 新 Course 的纯函数：
// 被修改节点到根的路径整体替换，未命中的兄弟节点原样共享。
// 查不到目标 id 时返回结构不变的课程和 found=false，由调用方决定
// 是静默忽略还是报错。

// AddModule 追加一个默认标题的空模块
func AddModule(c Course) (Course, Module) {
	mod := NewModule()
	out := c
	out.Modules = append(append([]Module{}, c.Modules...), mod)
	return out, mod
}

// RenameModule 重命名模块
func RenameModule(c Course, moduleID, title string) (Course, bool) {
	found := false
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		if m.ID == moduleID {
			m.Title = title
			found = true
		}
		out.Modules[i] = m
	}
	if !found {
		return c, false
	}
	return out, true
}

// AddLesson 向模块追加一条默认课时，isDraft 为 true
func AddLesson(c Course, moduleID string) (Course, Lesson, bool) {
	lesson := NewLesson()
	found := false
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		if m.ID == moduleID {
			m.Lessons = append(append([]Lesson{}, m.Lessons...), lesson)
			found = true
		}
		out.Modules[i] = m
	}
	if !found {
		return c, Lesson{}, false
	}
	return out, lesson, true
}

// LessonUpdate 课时部分更新，nil 字段保持原值
type LessonUpdate struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Blocks      *[]ContentBlock `json:"blocks,omitempty"`
	IsDraft     *bool           `json:"isDraft,omitempty"`
}

func (u LessonUpdate) apply(l Lesson) Lesson {
	if u.Title != nil {
		l.Title = *u.Title
	}
	if u.Description != nil {
		l.Description = *u.Description
	}
	if u.Blocks != nil {
		l.Blocks = append([]ContentBlock{}, (*u.Blocks)...)
	}
	if u.IsDraft != nil {
		l.IsDraft = *u.IsDraft
	}
	return l
}

// UpdateLesson 将给定字段合并进所有模块中匹配 id 的课时
func UpdateLesson(c Course, lessonID string, upd LessonUpdate) (Course, bool) {
	found := false
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		hit := false
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				hit = true
				break
			}
		}
		if hit {
			lessons := make([]Lesson, len(m.Lessons))
			for j, l := range m.Lessons {
				if l.ID == lessonID {
					l = upd.apply(l)
					found = true
				}
				lessons[j] = l
			}
			m.Lessons = lessons
		}
		out.Modules[i] = m
	}
	if !found {
		return c, false
	}
	return out, true
}

// AddBlock 向课时末尾追加内容块
func AddBlock(c Course, lessonID string, block ContentBlock) (Course, bool) {
	found := false
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		hit := false
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				hit = true
				break
			}
		}
		if hit {
			lessons := make([]Lesson, len(m.Lessons))
			for j, l := range m.Lessons {
				if l.ID == lessonID {
					l.Blocks = append(append([]ContentBlock{}, l.Blocks...), block)
					found = true
				}
				lessons[j] = l
			}
			m.Lessons = lessons
		}
		out.Modules[i] = m
	}
	if !found {
		return c, false
	}
	return out, true
}

// RemoveBlock 按 id 删除内容块。课时存在而块不存在时视为幂等成功。
func RemoveBlock(c Course, lessonID, blockID string) (Course, bool) {
	found := false
	out := c
	out.Modules = make([]Module, len(c.Modules))
	for i, m := range c.Modules {
		hit := false
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				hit = true
				break
			}
		}
		if hit {
			lessons := make([]Lesson, len(m.Lessons))
			for j, l := range m.Lessons {
				if l.ID == lessonID {
					found = true
					blocks := make([]ContentBlock, 0, len(l.Blocks))
					for _, b := range l.Blocks {
						if b.ID != blockID {
							blocks = append(blocks, b)
						}
					}
					l.Blocks = blocks
				}
				lessons[j] = l
			}
			m.Lessons = lessons
		}
		out.Modules[i] = m
	}
	if !found {
		return c, false
	}
	return out, true
}
